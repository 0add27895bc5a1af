package recommend

import (
	"strings"
	"unicode/utf8"

	"petmatch/internal/domain/pets"
)

const (
	maxPreferenceScore = 100.0

	typeAffinityWeight  = 30.0
	sizeAffinityWeight  = 20.0
	breedAffinityWeight = 25.0
	keywordBonus        = 2
	keywordPenalty      = 3
	agePreferenceBonus  = 10.0

	// Radio (en caracteres) alrededor de un keyword donde se busca contexto negativo.
	negativeContextRadius = 50
)

// ScorePreference mide afinidad con el historial de likes. Tope 100.
// Con perfil vacío devuelve 0.
func ScorePreference(p pets.Pet, prof Profile, lx *Lexicon) float64 {
	if prof.Empty() {
		return 0
	}

	score := 0.0
	if share, ok := prof.Types[strings.ToLower(strings.TrimSpace(string(p.Type)))]; ok {
		score += share * typeAffinityWeight
	}
	if share, ok := prof.Sizes[string(p.NormalizedSize())]; ok {
		score += share * sizeAffinityWeight
	}
	if share, ok := prof.Breeds[p.NormalizedBreed()]; ok {
		score += share * breedAffinityWeight
	}

	// El aporte de keywords se suma en enteros: el orden del map no altera el score.
	desc := strings.ToLower(p.Description)
	if desc != "" {
		keywords := 0
		for kw, freq := range prof.Keywords {
			idx := strings.Index(desc, kw)
			if idx < 0 {
				continue
			}
			if inNegativeContext(desc, idx, len(kw), lx) {
				keywords -= freq * keywordPenalty
			} else {
				keywords += freq * keywordBonus
			}
		}
		score += float64(keywords)
	}

	if prof.AgePreference != "" && AgeBucketOf(p) == prof.AgePreference {
		score += agePreferenceBonus
	}

	if score > maxPreferenceScore {
		score = maxPreferenceScore
	}
	return score
}

// inNegativeContext busca frases negativas en la ventana de ±negativeContextRadius
// caracteres alrededor de text[start:start+length]. Índices en bytes, ventana en runas.
func inNegativeContext(text string, start, length int, lx *Lexicon) bool {
	from := start
	for n := 0; n < negativeContextRadius && from > 0; n++ {
		_, size := utf8.DecodeLastRuneInString(text[:from])
		from -= size
	}
	to := start + length
	for n := 0; n < negativeContextRadius && to < len(text); n++ {
		_, size := utf8.DecodeRuneInString(text[to:])
		to += size
	}

	window := text[from:to]
	for _, phrase := range lx.negativePhrases {
		if strings.Contains(window, phrase) {
			return true
		}
	}
	return false
}
