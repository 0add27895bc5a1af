package recommend

import (
	"petmatch/internal/domain/intakes"
	"petmatch/internal/domain/pets"
)

// NeutralCompatibility es el score base, y el score completo cuando el usuario
// no tiene cuestionario.
const NeutralCompatibility = 50.0

// Reglas duras que pueden descartar un candidato.
const (
	RuleChildren    = "children"
	RuleSizeHousing = "size_housing"
)

// Compatibility es el resultado del scorer: o descalificado o un valor >= 0.
// Un 0 calculado no es lo mismo que una descalificación.
type Compatibility struct {
	value        float64
	disqualified bool
	rule         string
}

func Compatible(v float64) Compatibility {
	if v < 0 {
		v = 0
	}
	return Compatibility{value: v}
}

func Disqualified(rule string) Compatibility {
	return Compatibility{disqualified: true, rule: rule}
}

func (c Compatibility) IsDisqualified() bool { return c.disqualified }

// Value es 0 para un candidato descalificado.
func (c Compatibility) Value() float64 {
	if c.disqualified {
		return 0
	}
	return c.value
}

// Rule devuelve la regla que descalificó ("" si no aplica).
func (c Compatibility) Rule() string { return c.rule }

// ScoreCompatibility evalúa un candidato contra el cuestionario de adopción.
// Las reglas se aplican en orden; las duras cortan la evaluación.
func ScoreCompatibility(p pets.Pet, in *intakes.Intake, lx *Lexicon) Compatibility {
	if in == nil {
		return Compatible(NeutralCompatibility)
	}

	score := NeutralCompatibility
	size := p.NormalizedSize()
	breed := p.NormalizedBreed()
	isDog := p.IsType(pets.TypeDog)
	isCat := p.IsType(pets.TypeCat)
	age := AgeBucketOf(p)

	// Niños
	if in.HasChildren {
		if !p.HasCompatibility(pets.TagChildren) {
			return Disqualified(RuleChildren)
		}
		score += 30
	}

	// Tamaño vs vivienda (solo perros con tamaño conocido)
	if isDog && size != "" {
		switch size {
		case pets.SizeLarge:
			if !in.IsHouse || !in.HasYard {
				return Disqualified(RuleSizeHousing)
			}
			score += 25
		case pets.SizeMedium:
			switch {
			case in.IsHouse && in.HasYard:
				score += 20
			case in.IsHouse:
				score += 15
			case in.HasYard:
				score += 10
			default:
				score += 5
			}
		case pets.SizeSmall:
			score += 15
			if !in.IsHouse {
				score += 5
			}
		}
	}

	// Experiencia
	if in.HadPetsBefore {
		score += 15
	} else if lx.IsDifficultBreed(breed) {
		score -= 20
	}

	// Tiempo solo
	switch {
	case in.HoursAlonePerDay <= 4:
		score += 10
	case in.HoursAlonePerDay > 8:
		score -= 15
		if isDog {
			score -= 10
			if age == AgePuppy {
				score -= 20
			}
		}
		if isCat && age == AgePuppy {
			score -= 10
		}
	}

	// Otras mascotas en casa
	if in.HasCurrentPets {
		if p.HasCompatibility(pets.TagDogs) || p.HasCompatibility(pets.TagCats) {
			score += 15
		} else {
			score -= 25
		}
	}

	// Alergias
	if in.HasAllergies {
		switch {
		case lx.IsHypoallergenic(breed):
			score += 15
		case isCat:
			score += 5
		default:
			score -= 10
		}
	}

	// Seguridad del hogar
	if isDog && size == pets.SizeLarge && !in.HasSecurity {
		score -= 10
	}
	if isCat && !in.HasSecurity {
		score -= 10
	}

	if in.SleepingLocation == intakes.SleepInside && size == pets.SizeLarge {
		score -= 5
	}

	if in.WillNeuterVaccinate {
		if p.Sterilized == pets.HealthYes {
			score += 5
		}
		if p.Vaccinated == pets.HealthYes {
			score += 5
		}
	}

	if in.HasChildren && p.Vaccinated != pets.HealthYes {
		score -= 15
	}

	return Compatible(score)
}
