package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"petmatch/internal/domain/pets"
)

func TestScorePreference_EmptyProfileContributesNothing(t *testing.T) {
	p := dog("d1", pets.SizeMedium)
	p.Description = "juguetón y cariñoso"

	assert.Zero(t, ScorePreference(p, Profile{}, DefaultLexicon()))
}

func TestScorePreference_Affinities(t *testing.T) {
	prof := Profile{
		Likes:  2,
		Types:  map[string]float64{"perro": 1},
		Sizes:  map[string]float64{"mediano": 0.5},
		Breeds: map[string]float64{"beagle": 0.5},
	}

	p := dog("d1", "MEDIANO")
	p.Breed = "Beagle"

	// 30 tipo + 10 tamaño + 12.5 raza; sin preferencia de edad
	assert.InDelta(t, 52.5, ScorePreference(p, prof, DefaultLexicon()), 1e-9)

	prof.AgePreference = AgeAdult
	assert.InDelta(t, 62.5, ScorePreference(p, prof, DefaultLexicon()), 1e-9)
}

func TestScorePreference_KeywordBonus(t *testing.T) {
	prof := Profile{Likes: 1, Keywords: map[string]int{"juguetón": 2}}

	p := cat("c1")
	p.Description = "Un gato muy JUGUETÓN y tranquilo"

	assert.InDelta(t, 4, ScorePreference(p, prof, DefaultLexicon()), 1e-9)
}

func TestScorePreference_NegativeContextPenalizes(t *testing.T) {
	prof := Profile{Likes: 1, Keywords: map[string]int{"niños": 2}}

	p := dog("d1", "")
	p.Description = "Este perro no es apto para convivir con niños pequeños"

	assert.InDelta(t, -6, ScorePreference(p, prof, DefaultLexicon()), 1e-9)
}

func TestScorePreference_NegativeContextOutsideWindowIsIgnored(t *testing.T) {
	prof := Profile{Likes: 1, Keywords: map[string]int{"tranquilo": 1}}

	p := dog("d1", "")
	p.Description = "No es un perro guardián. Le encanta pasear por el parque todas las mañanas y es muy tranquilo"

	assert.InDelta(t, 2, ScorePreference(p, prof, DefaultLexicon()), 1e-9)
}

func TestScorePreference_CappedAt100(t *testing.T) {
	prof := Profile{
		Likes:    1,
		Types:    map[string]float64{"perro": 1},
		Keywords: map[string]int{"cariñoso": 50},
	}
	p := dog("d1", "")
	p.Description = "cariñoso"

	assert.Equal(t, 100.0, ScorePreference(p, prof, DefaultLexicon()))
}

func TestInNegativeContext_HandlesMultibyteWindowEdges(t *testing.T) {
	text := "ñññññ sin correa"
	idx := len("ñññññ sin ")

	assert.True(t, inNegativeContext(text, idx, len("correa"), DefaultLexicon()))
}

func TestScorePreference_ManyKeywordsIsBitStable(t *testing.T) {
	prof := Profile{
		Likes:    3,
		Types:    map[string]float64{"perro": 2.0 / 3},
		Sizes:    map[string]float64{"mediano": 1.0 / 3},
		Breeds:   map[string]float64{"mestizo": 1.0 / 3},
		Keywords: map[string]int{},
	}
	words := []string{"juguetón", "cariñoso", "tranquilo", "sociable", "guardián", "paseos", "dormilón", "obediente"}
	for i, w := range words {
		prof.Keywords[w] = i + 1
	}

	p := dog("d1", pets.SizeMedium)
	p.Breed = "Mestizo"
	p.Description = "Juguetón, cariñoso y sociable. Le gustan los paseos largos, pero no es guardián. Obediente y dormilón."

	want := ScorePreference(p, prof, DefaultLexicon())
	for i := 0; i < 200; i++ {
		assert.Equal(t, want, ScorePreference(p, prof, DefaultLexicon()))
	}
}
