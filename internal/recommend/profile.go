package recommend

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"petmatch/internal/domain/pets"
)

const (
	minKeywordLength = 4 // runes; tokens de 3 o menos se descartan
	negationLookback = 3
)

// Profile resume el historial de likes de un usuario.
// Types, Sizes, Breeds y AgeCategories son fracciones del total de likes;
// Keywords son frecuencias absolutas.
type Profile struct {
	Likes int

	Types         map[string]float64
	Sizes         map[string]float64
	Breeds        map[string]float64
	AgeCategories map[AgeBucket]float64
	Keywords      map[string]int

	// "" si no hay likes.
	AgePreference AgeBucket
}

// Empty indica que no hay señal de preferencias. Lookups sobre un perfil vacío
// no fallan (los maps son nil) pero el scorer lo saltea completo.
func (p Profile) Empty() bool {
	return p.Likes == 0
}

// ExtractProfile construye el perfil a partir de las mascotas que el usuario likeó.
func ExtractProfile(liked []pets.Pet, lx *Lexicon) Profile {
	if len(liked) == 0 {
		return Profile{}
	}

	types := map[string]int{}
	sizes := map[string]int{}
	breeds := map[string]int{}
	ages := map[AgeBucket]int{}
	keywords := map[string]int{}

	for _, p := range liked {
		if t := strings.ToLower(strings.TrimSpace(string(p.Type))); t != "" {
			types[t]++
		}
		if s := string(p.NormalizedSize()); s != "" {
			sizes[s]++
		}
		if b := p.NormalizedBreed(); b != "" {
			breeds[b]++
		}
		ages[AgeBucketOf(p)]++

		for _, kw := range mineKeywords(p.Description, lx) {
			keywords[kw]++
		}
	}

	total := float64(len(liked))
	prof := Profile{
		Likes:         len(liked),
		Types:         normalize(types, total),
		Sizes:         normalize(sizes, total),
		Breeds:        normalize(breeds, total),
		AgeCategories: make(map[AgeBucket]float64, len(ages)),
		Keywords:      keywords,
	}

	best := 0
	for _, b := range ageBuckets {
		n := ages[b]
		if n == 0 {
			continue
		}
		prof.AgeCategories[b] = float64(n) / total
		if n > best {
			best = n
			prof.AgePreference = b
		}
	}

	return prof
}

// mineKeywords devuelve los tokens relevantes de una descripción, descartando
// stop words y los que aparecen justo después de una negación.
func mineKeywords(description string, lx *Lexicon) []string {
	tokens := tokenize(description)
	out := make([]string, 0, len(tokens))

	for i, tok := range tokens {
		if utf8.RuneCountInString(tok) < minKeywordLength || lx.IsStopWord(tok) {
			continue
		}
		if negatedAt(tokens, i, lx) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func negatedAt(tokens []string, i int, lx *Lexicon) bool {
	from := i - negationLookback
	if from < 0 {
		from = 0
	}
	for _, prev := range tokens[from:i] {
		if lx.IsNegation(prev) {
			return true
		}
	}
	return false
}

// tokenize corta en todo lo que no sea letra, dígito o '_'.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}

func normalize(counts map[string]int, total float64) map[string]float64 {
	out := make(map[string]float64, len(counts))
	for k, n := range counts {
		out[k] = float64(n) / total
	}
	return out
}
