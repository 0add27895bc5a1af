package recommend

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petmatch/internal/domain/pets"
)

func countBy(items []Scored, key func(Scored) string) map[string]int {
	out := map[string]int{}
	for _, it := range items {
		out[key(it)]++
	}
	return out
}

func TestDiversify_NoOpWhenInputFitsLimit(t *testing.T) {
	in := scoredPets(nDogs(8, pets.SizeLarge)...)

	out := Diversify(in, 10, DefaultCaps())
	assert.Equal(t, in, out)
}

func TestDiversify_AllDogs_CapsTypeAndReturnsFewer(t *testing.T) {
	in := scoredPets(nDogs(20, pets.SizeSmall, pets.SizeMedium, pets.SizeLarge)...)

	out := Diversify(in, 10, DefaultCaps())

	require.Len(t, out, 7)
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].Score, out[i].Score)
	}
}

func TestDiversify_BackfillsWithOtherTypes(t *testing.T) {
	ps := nDogs(15, pets.SizeSmall, pets.SizeMedium, pets.SizeLarge)
	for i := 0; i < 5; i++ {
		c := cat(fmt.Sprintf("cat-%d", i))
		c.Size = pets.SizeMedium
		ps = append(ps, c)
	}
	in := scoredPets(ps...)

	out := Diversify(in, 10, DefaultCaps())

	require.Len(t, out, 10)
	types := countBy(out, func(s Scored) string { return string(s.Pet.Type) })
	assert.Equal(t, 7, types["perro"])
	assert.Equal(t, 3, types["gato"])
	sizes := countBy(out, func(s Scored) string { return string(s.Pet.Size) })
	for size, n := range sizes {
		assert.LessOrEqual(t, n, 5, size)
	}
}

func TestDiversify_SizeCapRelaxedOnlyInBackfill(t *testing.T) {
	// 6 perros grandes y 6 gatos grandes: la primera pasada admite 5 grandes;
	// el relleno completa ignorando el tope de tamaño.
	ps := make([]pets.Pet, 0, 12)
	for i := 0; i < 6; i++ {
		ps = append(ps, dog(fmt.Sprintf("dog-%d", i), pets.SizeLarge))
		c := cat(fmt.Sprintf("cat-%d", i))
		c.Size = pets.SizeLarge
		ps = append(ps, c)
	}
	in := scoredPets(ps...)

	out := Diversify(in, 10, DefaultCaps())

	require.Len(t, out, 10)
	assert.Equal(t, in[:5], out[:5])
	types := countBy(out, func(s Scored) string { return string(s.Pet.Type) })
	assert.LessOrEqual(t, types["perro"], 7)
	assert.LessOrEqual(t, types["gato"], 7)
}

func TestDiversify_NoDuplicates(t *testing.T) {
	in := scoredPets(nDogs(30, pets.SizeSmall, pets.SizeMedium)...)
	out := Diversify(in, 20, DefaultCaps())

	seen := map[string]struct{}{}
	for _, s := range out {
		_, dup := seen[s.Pet.ID]
		require.False(t, dup, s.Pet.ID)
		seen[s.Pet.ID] = struct{}{}
	}
	assert.Len(t, out, 14)
}

func TestDiversify_NonPositiveLimit(t *testing.T) {
	assert.Empty(t, Diversify(scoredPets(nDogs(3, pets.SizeSmall)...), 0, DefaultCaps()))
}

func TestCapFor(t *testing.T) {
	assert.Equal(t, 7, capFor(10, 0.7))
	assert.Equal(t, 5, capFor(10, 0.5))
	assert.Equal(t, 1, capFor(1, 0.5))
	assert.Equal(t, 4, capFor(5, 0.7))
	assert.Equal(t, 35, capFor(50, 0.7))
}
