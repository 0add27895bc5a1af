package likes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errPetMissing = errors.New("pets: not found")

type fakeOwners map[string]string

func (f fakeOwners) OwnerOf(ctx context.Context, petID string) (string, error) {
	owner, ok := f[petID]
	if !ok {
		return "", errPetMissing
	}
	return owner, nil
}

type testRepo struct {
	items []Like
}

func (r *testRepo) Create(ctx context.Context, l Like) error {
	for _, it := range r.items {
		if it.UserID == l.UserID && it.PetID == l.PetID {
			return ErrAlreadyLiked
		}
	}
	r.items = append(r.items, l)
	return nil
}

func (r *testRepo) Get(ctx context.Context, userID, petID string) (Like, error) {
	for _, it := range r.items {
		if it.UserID == userID && it.PetID == petID {
			return it, nil
		}
	}
	return Like{}, ErrNotFound
}

func (r *testRepo) Delete(ctx context.Context, userID, petID string) error {
	out := r.items[:0]
	for _, it := range r.items {
		if it.UserID == userID && it.PetID == petID {
			continue
		}
		out = append(out, it)
	}
	r.items = out
	return nil
}

func (r *testRepo) ListByUser(ctx context.Context, userID string) ([]Like, error) {
	out := make([]Like, 0)
	for _, it := range r.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func newTestService() (*Service, *testRepo, *[]string) {
	repo := &testRepo{}
	svc := NewService(repo, fakeOwners{"pet-1": "owner-1", "pet-2": "owner-1"}, errPetMissing)
	svc.now = func() time.Time { return time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC) }

	var changes []string
	svc.OnChange(func(_ context.Context, userID string) { changes = append(changes, userID) })
	return svc, repo, &changes
}

func TestService_Like_IsIdempotent(t *testing.T) {
	svc, repo, changes := newTestService()
	ctx := context.Background()

	first, created, err := svc.Like(ctx, "user-1", "pet-1")
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := svc.Like(ctx, "user-1", "pet-1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)

	assert.Len(t, repo.items, 1)
	assert.Equal(t, []string{"user-1"}, *changes)
}

func TestService_Like_Rejections(t *testing.T) {
	svc, _, changes := newTestService()
	ctx := context.Background()

	_, _, err := svc.Like(ctx, "owner-1", "pet-1")
	assert.ErrorIs(t, err, ErrOwnPet)

	_, _, err = svc.Like(ctx, "user-1", "ghost")
	assert.ErrorIs(t, err, ErrPetNotFound)

	_, _, err = svc.Like(ctx, "", "pet-1")
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Empty(t, *changes)
}

func TestService_Unlike_IdempotentAndNotifiesOnlyOnChange(t *testing.T) {
	svc, repo, changes := newTestService()
	ctx := context.Background()

	_, _, err := svc.Like(ctx, "user-1", "pet-1")
	require.NoError(t, err)
	_, _, err = svc.Like(ctx, "user-1", "pet-2")
	require.NoError(t, err)

	require.NoError(t, svc.Unlike(ctx, "user-1", "pet-1"))
	require.NoError(t, svc.Unlike(ctx, "user-1", "pet-1"))

	ids, err := svc.LikedPetIDs(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"pet-2"}, ids)
	assert.Len(t, repo.items, 1)
	assert.Len(t, *changes, 3)
}
