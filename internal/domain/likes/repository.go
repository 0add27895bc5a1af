package likes

import "context"

type Repository interface {
	// Create devuelve ErrAlreadyLiked si ya existe (UserID, PetID).
	Create(ctx context.Context, l Like) error
	Get(ctx context.Context, userID, petID string) (Like, error)
	// Delete es idempotente.
	Delete(ctx context.Context, userID, petID string) error
	// ListByUser devuelve los likes más nuevos primero.
	ListByUser(ctx context.Context, userID string) ([]Like, error)
}
