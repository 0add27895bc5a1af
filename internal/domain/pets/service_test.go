package pets

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) GetMany(ctx context.Context, ids []string) ([]Pet, error) {
	out := make([]Pet, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) ListAvailable(ctx context.Context, f AvailableFilter) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if !p.AvailableForAdoption || p.OwnerUserID == f.ExcludeOwnerID {
			continue
		}
		if slices.Contains(f.ExcludePetIDs, p.ID) {
			continue
		}
		if f.Type != "" && p.Type != f.Type {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_NormalizesFields(t *testing.T) {
	svc := NewService(newTestRepo())
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	p, err := svc.Create(context.Background(), "owner-1", CreateInput{
		Name:          "  Luna ",
		Type:          "Perro",
		Size:          "Mediano",
		Compatibility: []string{"Niños", "niños", " ", "Gatos"},
		Sterilized:    "si",
		Vaccinated:    "No",
		AgeYears:      intPtr(2),
	})
	require.NoError(t, err)

	assert.Equal(t, "Luna", p.Name)
	assert.Equal(t, TypeDog, p.Type)
	assert.Equal(t, SizeMedium, p.Size)
	assert.Equal(t, []string{"niños", "gatos"}, p.Compatibility)
	assert.Equal(t, HealthYes, p.Sterilized)
	assert.Equal(t, HealthNo, p.Vaccinated)
	assert.True(t, p.AvailableForAdoption)
	assert.Equal(t, now, p.CreatedAt)
	assert.NotEmpty(t, p.ID)
}

func TestService_Create_RejectsInvalid(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	cases := map[string]CreateInput{
		"no name":      {Type: "perro"},
		"no type":      {Name: "Luna"},
		"bad size":     {Name: "Luna", Type: "perro", Size: "gigante"},
		"neg years":    {Name: "Luna", Type: "perro", AgeYears: intPtr(-1)},
		"months >= 12": {Name: "Luna", Type: "perro", AgeMonths: intPtr(12)},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, "owner-1", in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	_, err := svc.Create(ctx, " ", CreateInput{Name: "Luna", Type: "perro"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_SetAvailability_OwnerOnly_AndNotifies(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	var notified []string
	svc.OnAvailabilityChange(func(_ context.Context, petID string) {
		notified = append(notified, petID)
	})

	p, err := svc.Create(ctx, "owner-1", CreateInput{Name: "Luna", Type: "gato"})
	require.NoError(t, err)

	_, err = svc.SetAvailability(ctx, p.ID, "intruso", false)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.SetAvailability(ctx, p.ID, "owner-1", false)
	require.NoError(t, err)
	assert.False(t, updated.AvailableForAdoption)

	// sin cambio: no notifica de nuevo
	_, err = svc.SetAvailability(ctx, p.ID, "owner-1", false)
	require.NoError(t, err)
	assert.Equal(t, []string{p.ID}, notified)

	_, err = svc.SetAvailability(ctx, "missing", "owner-1", true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Candidates_ExcludesOwnAndListed(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	mine, _ := svc.Create(ctx, "user-1", CreateInput{Name: "Propia", Type: "perro"})
	liked, _ := svc.Create(ctx, "owner-2", CreateInput{Name: "Liked", Type: "perro"})
	other, _ := svc.Create(ctx, "owner-2", CreateInput{Name: "Otra", Type: "gato"})

	got, err := svc.Candidates(ctx, "user-1", []string{liked.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, other.ID, got[0].ID)
	assert.NotEqual(t, mine.ID, got[0].ID)
}

func TestParseHealthStatus(t *testing.T) {
	assert.Equal(t, HealthYes, ParseHealthStatus("Sí"))
	assert.Equal(t, HealthYes, ParseHealthStatus("yes"))
	assert.Equal(t, HealthNo, ParseHealthStatus(" NO "))
	assert.Equal(t, HealthUnknown, ParseHealthStatus("tal vez"))
}

func intPtr(v int) *int { return &v }
