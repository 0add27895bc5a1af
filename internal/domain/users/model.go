package users

import "time"

// User es la cuenta mínima que necesita el resto de los módulos.
type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}
