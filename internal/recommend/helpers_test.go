package recommend

import (
	"fmt"

	"petmatch/internal/domain/intakes"
	"petmatch/internal/domain/pets"
)

func intPtr(v int) *int { return &v }

func dog(id string, size pets.Size, tags ...string) pets.Pet {
	return pets.Pet{
		ID:                   id,
		OwnerUserID:          "owner-1",
		Type:                 pets.TypeDog,
		Size:                 size,
		Compatibility:        tags,
		AgeYears:             intPtr(4),
		AvailableForAdoption: true,
	}
}

func cat(id string, tags ...string) pets.Pet {
	return pets.Pet{
		ID:                   id,
		OwnerUserID:          "owner-1",
		Type:                 pets.TypeCat,
		Size:                 pets.SizeSmall,
		Compatibility:        tags,
		AgeYears:             intPtr(2),
		AvailableForAdoption: true,
	}
}

// baseIntake no dispara ningún ajuste salvo el de horas solo (5 h = neutro).
func baseIntake() *intakes.Intake {
	return &intakes.Intake{
		UserID:           "user-1",
		IsHouse:          true,
		HasYard:          true,
		HasSecurity:      true,
		HoursAlonePerDay: 5,
		SleepingLocation: intakes.SleepOutside,
	}
}

func scoredPets(ps ...pets.Pet) []Scored {
	out := make([]Scored, 0, len(ps))
	for i, p := range ps {
		out = append(out, Scored{Pet: p, Score: float64(100 - i)})
	}
	return out
}

func nDogs(n int, sizes ...pets.Size) []pets.Pet {
	out := make([]pets.Pet, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, dog(fmt.Sprintf("dog-%02d", i), sizes[i%len(sizes)]))
	}
	return out
}
