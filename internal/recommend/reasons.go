package recommend

import (
	"strings"

	"petmatch/internal/domain/intakes"
	"petmatch/internal/domain/pets"
)

const (
	maxReasons = 3

	// Fracción mínima de likes de un tipo para decir "te gustan los X".
	preferredTypeShare = 0.3
)

const (
	ReasonChildren       = "Compatible con niños"
	ReasonHouseWithYard  = "Perfecto para casa con patio"
	ReasonApartment      = "Ideal para departamento"
	ReasonOtherPets      = "Se lleva bien con otras mascotas"
	ReasonHypoallergenic = "Raza hipoalergénica"
	ReasonCompany        = "Tendrá compañía la mayor parte del día"
	ReasonVaccinated     = "Vacunado y saludable"
	ReasonPreferredBreed = "Raza que prefieres"
	ReasonPreferredAge   = "Tiene la edad que sueles preferir"
	ReasonFallback       = "Buena compatibilidad general"
)

// Reasons arma hasta 3 justificaciones: primero las del cuestionario,
// después las del historial de likes.
func Reasons(p pets.Pet, in *intakes.Intake, prof Profile, lx *Lexicon) []string {
	out := make([]string, 0, maxReasons)
	add := func(r string) {
		if len(out) < maxReasons {
			out = append(out, r)
		}
	}

	if in != nil {
		size := p.NormalizedSize()
		isDog := p.IsType(pets.TypeDog)

		if in.HasChildren && p.HasCompatibility(pets.TagChildren) {
			add(ReasonChildren)
		}
		if isDog && in.IsHouse && in.HasYard && (size == pets.SizeLarge || size == pets.SizeMedium) {
			add(ReasonHouseWithYard)
		}
		if !in.IsHouse && (size == pets.SizeSmall || (!isDog && size == "")) {
			add(ReasonApartment)
		}
		if in.HasCurrentPets && (p.HasCompatibility(pets.TagDogs) || p.HasCompatibility(pets.TagCats)) {
			add(ReasonOtherPets)
		}
		if in.HasAllergies && lx.IsHypoallergenic(p.NormalizedBreed()) {
			add(ReasonHypoallergenic)
		}
		if in.HoursAlonePerDay <= 4 {
			add(ReasonCompany)
		}
		if p.Vaccinated == pets.HealthYes {
			add(ReasonVaccinated)
		}
	}

	if !prof.Empty() {
		t := strings.ToLower(strings.TrimSpace(string(p.Type)))
		if prof.Types[t] >= preferredTypeShare {
			add("Te gustan los " + t + "s")
		}
		if b := p.NormalizedBreed(); b != "" && prof.Breeds[b] > 0 {
			add(ReasonPreferredBreed)
		}
		if prof.AgePreference != "" && AgeBucketOf(p) == prof.AgePreference {
			add(ReasonPreferredAge)
		}
	}

	if len(out) == 0 {
		return []string{ReasonFallback}
	}
	return out
}
