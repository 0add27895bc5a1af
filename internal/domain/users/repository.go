package users

import "context"

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	// GetByEmail devuelve ErrNotFound si no existe.
	GetByEmail(ctx context.Context, email string) (User, error)
}
