package intakes

import "context"

type Repository interface {
	// Upsert crea o reemplaza el cuestionario del usuario.
	Upsert(ctx context.Context, in Intake) error
	// GetByUser devuelve ErrNotFound si el usuario no lo completó.
	GetByUser(ctx context.Context, userID string) (Intake, error)
}
