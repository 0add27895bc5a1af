package pets

import (
	"strings"
	"time"
)

// Type es la especie publicada. Se guarda en minúsculas.
type Type string

const (
	TypeDog Type = "perro"
	TypeCat Type = "gato"
)

// Size del animal (pequeño, mediano, grande). Comparación case-insensitive.
type Size string

const (
	SizeSmall  Size = "pequeño"
	SizeMedium Size = "mediano"
	SizeLarge  Size = "grande"
)

// HealthStatus es tri-estado: "Sí", "No" o desconocido ("").
type HealthStatus string

const (
	HealthYes     HealthStatus = "Sí"
	HealthNo      HealthStatus = "No"
	HealthUnknown HealthStatus = ""
)

// Tags de compatibilidad usados por el motor de recomendaciones.
const (
	TagChildren = "niños"
	TagDogs     = "perros"
	TagCats     = "gatos"
)

// Pet es una mascota publicada en adopción.
type Pet struct {
	ID          string
	OwnerUserID string

	Name        string
	Type        Type
	Size        Size
	Breed       string
	Gender      string
	Color       string
	Description string

	Compatibility []string

	Sterilized HealthStatus
	Vaccinated HealthStatus

	// nil = desconocido
	AgeYears  *int
	AgeMonths *int

	AvailableForAdoption bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AgeInMonths devuelve la edad total en meses y si se conoce.
func (p Pet) AgeInMonths() (int, bool) {
	if p.AgeYears == nil && p.AgeMonths == nil {
		return 0, false
	}
	months := 0
	if p.AgeYears != nil {
		months += *p.AgeYears * 12
	}
	if p.AgeMonths != nil {
		months += *p.AgeMonths
	}
	return months, true
}

func (p Pet) IsType(t Type) bool {
	return strings.EqualFold(strings.TrimSpace(string(p.Type)), string(t))
}

// NormalizedSize devuelve el tamaño en minúsculas ("" si no se informó).
func (p Pet) NormalizedSize() Size {
	return Size(strings.ToLower(strings.TrimSpace(string(p.Size))))
}

func (p Pet) NormalizedBreed() string {
	return strings.ToLower(strings.TrimSpace(p.Breed))
}

// HasCompatibility compara tags sin distinguir mayúsculas.
func (p Pet) HasCompatibility(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, c := range p.Compatibility {
		if strings.ToLower(strings.TrimSpace(c)) == tag {
			return true
		}
	}
	return false
}
