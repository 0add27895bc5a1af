package recommendations

import (
	"context"
	"errors"

	"petmatch/internal/domain/intakes"
	"petmatch/internal/domain/pets"
)

// Colaboradores. Se declaran acá para no acoplar con los services concretos.

type UserDirectory interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

type LikeSource interface {
	LikedPetIDs(ctx context.Context, userID string) ([]string, error)
}

type PetSource interface {
	GetMany(ctx context.Context, ids []string) ([]pets.Pet, error)
	Candidates(ctx context.Context, userID string, exclude []string) ([]pets.Pet, error)
}

type IntakeSource interface {
	// Find devuelve nil si el usuario no completó el cuestionario.
	Find(ctx context.Context, userID string) (*intakes.Intake, error)
}

// ErrStaleCache lo devuelve Cache.Set cuando hubo un Invalidate entre la lectura
// de la versión y la escritura. El resultado no se guarda.
var ErrStaleCache = errors.New("recommendation cache version changed")

// Cache de resultados por (usuario, limit). Implementación opcional.
// Cada Invalidate cambia la versión del usuario; Set solo escribe si la versión
// sigue siendo la leída antes de calcular.
type Cache interface {
	Version(ctx context.Context, userID string) (int64, error)
	Get(ctx context.Context, userID string, limit int) (Result, bool, error)
	Set(ctx context.Context, userID string, limit int, version int64, r Result) error
	Invalidate(ctx context.Context, userID string) error
}
