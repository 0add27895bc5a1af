package recommend

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petmatch/internal/domain/intakes"
	"petmatch/internal/domain/pets"
)

func newTestEngine() *Engine {
	return NewEngine(DefaultConfig(), DefaultLexicon(), nil)
}

func TestRank_NoIntakeNoLikes_NeutralScore(t *testing.T) {
	res, err := newTestEngine().Rank(context.Background(), Input{
		UserID:     "user-1",
		Candidates: []pets.Pet{dog("d1", pets.SizeMedium)},
		Limit:      10,
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)

	assert.InDelta(t, 30.0, res.Items[0].Score, 1e-9)
	assert.Equal(t, []string{ReasonFallback}, res.Items[0].Reasons)
}

func TestRank_ChildrenScenario(t *testing.T) {
	in := &intakes.Intake{
		UserID:           "user-1",
		HasChildren:      true,
		IsHouse:          true,
		HasYard:          true,
		HadPetsBefore:    true,
		HoursAlonePerDay: 3,
	}
	p := dog("d1", pets.SizeMedium, "niños", "perros")

	res, err := newTestEngine().Rank(context.Background(), Input{
		UserID:     "user-1",
		Intake:     in,
		Candidates: []pets.Pet{p},
		Limit:      10,
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)

	got := res.Items[0]
	assert.Greater(t, got.Compatibility, 0.0)
	assert.Contains(t, got.Reasons, ReasonChildren)
	assert.Contains(t, got.Reasons, ReasonHouseWithYard)
	assert.LessOrEqual(t, len(got.Reasons), 3)
}

func TestRank_DisqualifiedNeverReturned(t *testing.T) {
	in := baseIntake()
	in.HasChildren = true
	in.HasYard = false

	liked := cat("liked")
	liked.Description = "juguetón juguetón"
	// preferencia alta no rescata a un descalificado
	noKids := cat("c1")
	noKids.Description = "juguetón"

	res, err := newTestEngine().Rank(context.Background(), Input{
		UserID: "user-1",
		Intake: in,
		Liked:  []pets.Pet{liked},
		Candidates: []pets.Pet{
			noKids,
			dog("d-large", pets.SizeLarge, "niños"),
			dog("d-ok", pets.SizeSmall, "niños"),
		},
		Limit: 10,
	})
	require.NoError(t, err)

	require.Len(t, res.Items, 1)
	assert.Equal(t, "d-ok", res.Items[0].Pet.ID)
	assert.Equal(t, 2, res.Disqualified)
	assert.Equal(t, 3, res.Candidates)
}

func TestRank_ExcludesLikedOwnedAndUnavailable(t *testing.T) {
	liked := dog("liked", pets.SizeSmall)
	own := dog("own", pets.SizeSmall)
	own.OwnerUserID = "user-1"
	gone := dog("gone", pets.SizeSmall)
	gone.AvailableForAdoption = false

	res, err := newTestEngine().Rank(context.Background(), Input{
		UserID:     "user-1",
		Liked:      []pets.Pet{liked},
		Candidates: []pets.Pet{liked, own, gone, dog("ok", pets.SizeSmall)},
		Limit:      10,
	})
	require.NoError(t, err)

	require.Len(t, res.Items, 1)
	assert.Equal(t, "ok", res.Items[0].Pet.ID)
	assert.Equal(t, 1, res.Candidates)
}

func TestRank_PreferenceWeightedAndSorted(t *testing.T) {
	liked := cat("liked")
	liked.Breed = "Siamés"

	siamese := cat("siamese")
	siamese.Breed = "siamés"
	other := dog("dog", pets.SizeSmall)

	res, err := newTestEngine().Rank(context.Background(), Input{
		UserID:     "user-1",
		Liked:      []pets.Pet{liked},
		Candidates: []pets.Pet{other, siamese},
		Limit:      10,
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)

	top := res.Items[0]
	assert.Equal(t, "siamese", top.Pet.ID)
	// 30 tipo + 20 tamaño + 25 raza + 10 edad = 85 -> 50*0.6 + 85*0.4
	assert.InDelta(t, 85.0, top.Preference, 1e-9)
	assert.InDelta(t, 64.0, top.Score, 1e-9)
	assert.Equal(t, []string{"Te gustan los gatos", ReasonPreferredBreed, ReasonPreferredAge}, top.Reasons)

	// perro pequeño: solo suma el tamaño (20) -> 30 + 8
	assert.InDelta(t, 38.0, res.Items[1].Score, 1e-9)
}

func TestRank_Idempotent(t *testing.T) {
	liked := []pets.Pet{cat("l1"), dog("l2", pets.SizeMedium)}
	liked[0].Description = "tranquilo y cariñoso"
	liked[1].Description = "cariñoso, no muerde"

	candidates := make([]pets.Pet, 0, 30)
	for i := 0; i < 15; i++ {
		d := dog(fmt.Sprintf("d%d", i), []pets.Size{pets.SizeSmall, pets.SizeMedium, pets.SizeLarge}[i%3])
		d.Description = "muy cariñoso"
		candidates = append(candidates, d)
		c := cat(fmt.Sprintf("c%d", i))
		c.Description = "tranquilo"
		candidates = append(candidates, c)
	}
	in := Input{UserID: "user-1", Intake: baseIntake(), Liked: liked, Candidates: candidates, Limit: 10}

	e := newTestEngine()
	first, err := e.Rank(context.Background(), in)
	require.NoError(t, err)
	second, err := e.Rank(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRank_ScoringFailureSkipsOnlyThatCandidate(t *testing.T) {
	e := newTestEngine()
	base := e.score
	e.score = func(p pets.Pet, in *intakes.Intake, prof Profile) (Scored, Compatibility) {
		if p.ID == "boom" {
			panic("corrupt row")
		}
		return base(p, in, prof)
	}

	res, err := e.Rank(context.Background(), Input{
		UserID:     "user-1",
		Candidates: []pets.Pet{dog("boom", pets.SizeSmall), dog("ok", pets.SizeSmall)},
		Limit:      10,
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "ok", res.Items[0].Pet.ID)
	assert.Equal(t, 1, res.Failed)
}

func TestRank_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestEngine().Rank(ctx, Input{Candidates: []pets.Pet{dog("d", "")}, Limit: 10})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRank_EmptyPool(t *testing.T) {
	res, err := newTestEngine().Rank(context.Background(), Input{UserID: "user-1", Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}
