package recommendations

import "petmatch/internal/domain/pets"

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// Mensajes para resultados vacíos (no son errores).
const (
	MessageNoCandidates = "No hay mascotas disponibles para adopción en este momento"
	MessageNoMatches    = "No encontramos mascotas compatibles con tu perfil por ahora"
)

// Item es una mascota recomendada, lista para serializar.
type Item struct {
	Pet           pets.Pet
	Score         float64
	Compatibility float64
	Preference    float64
	Reasons       []string
}

// Result es lo que devuelve el servicio y lo que se guarda en cache.
type Result struct {
	Items   []Item
	Message string `json:",omitempty"`
}
