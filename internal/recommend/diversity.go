package recommend

import (
	"math"
	"strings"
)

// Caps limita cuánto puede dominar un mismo tipo o tamaño el resultado final.
type Caps struct {
	TypeRatio float64
	SizeRatio float64
}

func DefaultCaps() Caps {
	return Caps{TypeRatio: 0.7, SizeRatio: 0.5}
}

// capFor devuelve ceil(limit*ratio); el epsilon absorbe el error de punto flotante.
func capFor(limit int, ratio float64) int {
	return int(math.Ceil(float64(limit)*ratio - 1e-9))
}

// Diversify toma candidatos ordenados por score (desc) y elige hasta limit.
//
// Primera pasada: admite mientras el tipo y el tamaño estén bajo su tope.
// Relleno: si faltan lugares, agrega los siguientes mejores ignorando el tope
// de tamaño; el tope de tipo se respeta siempre. Si la entrada no supera
// limit se devuelve tal cual.
func Diversify(sorted []Scored, limit int, caps Caps) []Scored {
	if limit <= 0 {
		return []Scored{}
	}
	if len(sorted) <= limit {
		return sorted
	}

	maxType := capFor(limit, caps.TypeRatio)
	maxSize := capFor(limit, caps.SizeRatio)

	typeCount := map[string]int{}
	sizeCount := map[string]int{}
	admitted := make(map[int]struct{}, limit)
	out := make([]Scored, 0, limit)

	admit := func(i int, t, s string) {
		admitted[i] = struct{}{}
		typeCount[t]++
		sizeCount[s]++
		out = append(out, sorted[i])
	}

	for i, c := range sorted {
		if len(out) >= limit {
			break
		}
		t, s := diversityKeys(c)
		if typeCount[t] < maxType && sizeCount[s] < maxSize {
			admit(i, t, s)
		}
	}

	for i, c := range sorted {
		if len(out) >= limit {
			break
		}
		if _, ok := admitted[i]; ok {
			continue
		}
		t, s := diversityKeys(c)
		if typeCount[t] < maxType {
			admit(i, t, s)
		}
	}

	return out
}

func diversityKeys(c Scored) (string, string) {
	return strings.ToLower(strings.TrimSpace(string(c.Pet.Type))), string(c.Pet.NormalizedSize())
}
