package intakes

import "time"

type SleepingLocation string

const (
	SleepInside  SleepingLocation = "inside"
	SleepOutside SleepingLocation = "outside"
)

// Intake es el cuestionario de pre-adopción (uno por usuario).
type Intake struct {
	ID     string
	UserID string

	// Vivienda
	IsHouse     bool
	HasYard     bool
	HasSecurity bool

	// Hogar y experiencia
	HadPetsBefore  bool
	HasCurrentPets bool
	HasAllergies   bool
	HasChildren    bool

	WillNeuterVaccinate bool

	HoursAlonePerDay int
	SleepingLocation SleepingLocation

	CreatedAt time.Time
	UpdatedAt time.Time
}
