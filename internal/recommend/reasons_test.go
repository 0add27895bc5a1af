package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"petmatch/internal/domain/pets"
)

func TestReasons_FallbackWhenNothingFires(t *testing.T) {
	assert.Equal(t, []string{ReasonFallback}, Reasons(dog("d", ""), nil, Profile{}, DefaultLexicon()))
}

func TestReasons_IntakeFirstThenPreferences_TruncatedToThree(t *testing.T) {
	in := baseIntake()
	in.IsHouse = false
	in.HasAllergies = true
	in.HasCurrentPets = true

	p := dog("d", pets.SizeSmall, "gatos")
	p.Breed = "Schnauzer"
	p.Vaccinated = pets.HealthYes

	prof := Profile{Likes: 1, Types: map[string]float64{"perro": 1}}

	got := Reasons(p, in, prof, DefaultLexicon())
	assert.Equal(t, []string{ReasonApartment, ReasonOtherPets, ReasonHypoallergenic}, got)
}

func TestReasons_PreferenceOnly(t *testing.T) {
	prof := Profile{
		Likes:         3,
		Types:         map[string]float64{"perro": 0.2, "gato": 0.8},
		Breeds:        map[string]float64{"labrador": 0.2},
		AgePreference: AgeSenior,
	}
	p := dog("d", pets.SizeLarge)
	p.Breed = "Labrador"

	// 0.2 < umbral: no dice "te gustan los perros"
	assert.Equal(t, []string{ReasonPreferredBreed}, Reasons(p, nil, prof, DefaultLexicon()))
}

func TestReasons_VaccinatedWithIntake(t *testing.T) {
	in := baseIntake()
	p := cat("c")
	p.Vaccinated = pets.HealthYes

	assert.Equal(t, []string{ReasonVaccinated}, Reasons(p, in, Profile{}, DefaultLexicon()))
}
