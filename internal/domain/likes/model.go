package likes

import "time"

// Like registra que un usuario marcó una mascota. Único por (UserID, PetID).
type Like struct {
	ID        string
	UserID    string
	PetID     string
	CreatedAt time.Time
}
