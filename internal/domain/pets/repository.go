package pets

import "context"

// AvailableFilter acota el listado de mascotas en adopción.
// Limit 0 = sin límite (el motor de recomendaciones necesita el pool completo).
type AvailableFilter struct {
	Type           Type
	ExcludeOwnerID string
	ExcludePetIDs  []string
	Limit          int
}

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	// ListAvailable devuelve solo mascotas con AvailableForAdoption=true,
	// ordenadas por created_at desc.
	ListAvailable(ctx context.Context, f AvailableFilter) ([]Pet, error)
	GetMany(ctx context.Context, ids []string) ([]Pet, error)
}
