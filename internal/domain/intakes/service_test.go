package intakes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byUser map[string]Intake
}

func (r *testRepo) Upsert(ctx context.Context, in Intake) error {
	r.byUser[in.UserID] = in
	return nil
}

func (r *testRepo) GetByUser(ctx context.Context, userID string) (Intake, error) {
	in, ok := r.byUser[userID]
	if !ok {
		return Intake{}, ErrNotFound
	}
	return in, nil
}

func TestService_Submit_ReplacesKeepingIdentity(t *testing.T) {
	repo := &testRepo{byUser: map[string]Intake{}}
	svc := NewService(repo)
	ctx := context.Background()

	now1 := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	now2 := now1.Add(time.Hour)
	var changes int
	svc.OnChange(func(context.Context, string) { changes++ })

	svc.now = func() time.Time { return now1 }
	first, err := svc.Submit(ctx, "user-1", SubmitInput{IsHouse: true, HoursAlonePerDay: 4, SleepingLocation: "Inside"})
	require.NoError(t, err)
	assert.Equal(t, SleepInside, first.SleepingLocation)

	svc.now = func() time.Time { return now2 }
	second, err := svc.Submit(ctx, "user-1", SubmitInput{HasChildren: true})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, now1, second.CreatedAt)
	assert.Equal(t, now2, second.UpdatedAt)
	assert.False(t, second.IsHouse)
	assert.True(t, second.HasChildren)
	assert.Equal(t, 2, changes)
}

func TestService_Submit_Validation(t *testing.T) {
	svc := NewService(&testRepo{byUser: map[string]Intake{}})
	ctx := context.Background()

	_, err := svc.Submit(ctx, "user-1", SubmitInput{HoursAlonePerDay: 25})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Submit(ctx, "user-1", SubmitInput{SleepingLocation: "garage"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Submit(ctx, " ", SubmitInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Find_NilWhenMissing(t *testing.T) {
	svc := NewService(&testRepo{byUser: map[string]Intake{}})

	got, err := svc.Find(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
