package recommend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petmatch/internal/domain/pets"
)

func TestExtractProfile_NoLikes_IsEmpty(t *testing.T) {
	prof := ExtractProfile(nil, DefaultLexicon())

	assert.True(t, prof.Empty())
	assert.Empty(t, prof.Types)
	assert.Empty(t, prof.Keywords)
	assert.Equal(t, AgeBucket(""), prof.AgePreference)
	// lookups sobre maps nil no fallan
	assert.Zero(t, prof.Types["perro"])
}

func TestExtractProfile_NormalizesDistributions(t *testing.T) {
	d1 := dog("d1", "Mediano")
	d1.Breed = "Labrador"
	d2 := dog("d2", pets.SizeMedium)
	d2.Breed = "labrador "
	c1 := cat("c1")
	c1.AgeYears = nil
	c1.AgeMonths = intPtr(5)
	d3 := dog("d3", pets.SizeLarge)

	prof := ExtractProfile([]pets.Pet{d1, d2, c1, d3}, DefaultLexicon())

	assert.Equal(t, 4, prof.Likes)
	assert.InDelta(t, 0.75, prof.Types["perro"], 1e-9)
	assert.InDelta(t, 0.25, prof.Types["gato"], 1e-9)
	assert.InDelta(t, 0.5, prof.Sizes["mediano"], 1e-9)
	assert.InDelta(t, 0.5, prof.Breeds["labrador"], 1e-9)
	assert.NotContains(t, prof.Breeds, "")
	assert.InDelta(t, 0.75, prof.AgeCategories[AgeAdult], 1e-9)
	assert.InDelta(t, 0.25, prof.AgeCategories[AgePuppy], 1e-9)
	assert.Equal(t, AgeAdult, prof.AgePreference)
}

func TestExtractProfile_AgePreferenceTieBreaksChronologically(t *testing.T) {
	young := dog("d1", "")
	young.AgeYears = intPtr(2)
	senior := dog("d2", "")
	senior.AgeYears = intPtr(10)

	prof := ExtractProfile([]pets.Pet{senior, young}, DefaultLexicon())
	assert.Equal(t, AgeYoung, prof.AgePreference)
}

func TestExtractProfile_KeywordsSkipStopWordsAndNegatedTokens(t *testing.T) {
	p := dog("d1", "")
	p.Description = "Muy juguetón y cariñoso, tiene energía. No tolera gatos, sin problemas de salud. Cariñoso!"

	prof := ExtractProfile([]pets.Pet{p}, DefaultLexicon())

	assert.Equal(t, 2, prof.Keywords["cariñoso"])
	assert.Equal(t, 1, prof.Keywords["juguetón"])
	assert.Equal(t, 1, prof.Keywords["energía"])
	// stop words y tokens cortos
	assert.NotContains(t, prof.Keywords, "muy")
	assert.NotContains(t, prof.Keywords, "tiene")
	// dentro de los 3 tokens posteriores a "no"/"sin"
	assert.NotContains(t, prof.Keywords, "tolera")
	assert.NotContains(t, prof.Keywords, "gatos")
	assert.NotContains(t, prof.Keywords, "problemas")
	assert.NotContains(t, prof.Keywords, "salud")
}

func TestAgeBucketOf(t *testing.T) {
	cases := []struct {
		years, months *int
		want          AgeBucket
	}{
		{nil, nil, AgeAdult},
		{nil, intPtr(11), AgePuppy},
		{intPtr(1), nil, AgeYoung},
		{intPtr(2), intPtr(11), AgeYoung},
		{intPtr(3), nil, AgeAdult},
		{intPtr(8), nil, AgeAdult},
		{intPtr(8), intPtr(1), AgeSenior},
	}
	for _, tc := range cases {
		p := pets.Pet{AgeYears: tc.years, AgeMonths: tc.months}
		assert.Equal(t, tc.want, AgeBucketOf(p))
	}
}

func TestLoadVocabulary_FileOverridesOnlyListedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stop_words:\n  - perro\n  - juguetón\n"), 0o600))

	v, err := LoadVocabulary(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"perro", "juguetón"}, v.StopWords)
	assert.Equal(t, DefaultVocabulary().DifficultBreeds, v.DifficultBreeds)

	lx := NewLexicon(v)
	assert.True(t, lx.IsStopWord("juguetón"))
	assert.False(t, lx.IsStopWord("para"))
}

func TestLoadVocabulary_MissingFile(t *testing.T) {
	_, err := LoadVocabulary(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadVocabulary_EmptyPathReturnsDefaults(t *testing.T) {
	v, err := LoadVocabulary("")
	require.NoError(t, err)
	assert.Equal(t, DefaultVocabulary(), v)
}
