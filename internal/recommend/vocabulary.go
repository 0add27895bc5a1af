package recommend

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Vocabulary agrupa las listas fijas que usan los scorers.
// Se puede extender desde un YAML sin tocar código (ver LoadVocabulary).
type Vocabulary struct {
	// Tokens ignorados al minar keywords de descripciones.
	StopWords []string `koanf:"stop_words"`

	// Si alguno aparece en los 3 tokens previos, el keyword se descarta.
	NegationTokens []string `koanf:"negation_tokens"`

	// Frases que marcan contexto negativo en una ventana de ±50 caracteres.
	NegativePhrases []string `koanf:"negative_phrases"`

	// Razas que penalizan a adoptantes sin experiencia previa.
	DifficultBreeds []string `koanf:"difficult_breeds"`

	// Razas que bonifican a adoptantes con alergias.
	HypoallergenicBreeds []string `koanf:"hypoallergenic_breeds"`
}

func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		StopWords: []string{
			"muy", "para", "tiene", "está", "casa", "familia", "desde", "años", "meses",
		},
		NegationTokens: []string{
			"no", "sin", "nunca", "jamás", "evitar", "inadecuado", "peligroso", "pero", "excepto",
		},
		NegativePhrases: []string{
			"no es", "no está", "no se", "no apto", "no recomendable", "no compatible",
			"evitar", "sin", "nunca", "jamás", "prohibido", "inadecuado", "peligroso", "pero", "excepto",
		},
		DifficultBreeds: []string{
			"husky", "pastor alemán", "rottweiler", "doberman", "pit bull", "dogo",
		},
		HypoallergenicBreeds: []string{
			"poodle", "caniche", "bichon frise", "schnauzer",
		},
	}
}

// LoadVocabulary aplica el YAML de path sobre los defaults.
// Las listas presentes en el archivo reemplazan a las default; las ausentes se mantienen.
func LoadVocabulary(path string) (Vocabulary, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(DefaultVocabulary(), "koanf"), nil); err != nil {
		return Vocabulary{}, fmt.Errorf("load default vocabulary: %w", err)
	}

	if strings.TrimSpace(path) != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Vocabulary{}, fmt.Errorf("load vocabulary file %s: %w", path, err)
		}
	}

	var v Vocabulary
	if err := k.Unmarshal("", &v); err != nil {
		return Vocabulary{}, fmt.Errorf("unmarshal vocabulary: %w", err)
	}
	return v, nil
}

// Lexicon es la forma compilada (sets en minúsculas) de un Vocabulary.
// Es inmutable y se comparte entre requests.
type Lexicon struct {
	stopWords       map[string]struct{}
	negationTokens  map[string]struct{}
	negativePhrases []string
	difficultBreeds map[string]struct{}
	hypoallergenic  map[string]struct{}
}

func NewLexicon(v Vocabulary) *Lexicon {
	phrases := make([]string, 0, len(v.NegativePhrases))
	for _, p := range v.NegativePhrases {
		if p = normalizeTerm(p); p != "" {
			phrases = append(phrases, p)
		}
	}
	return &Lexicon{
		stopWords:       toSet(v.StopWords),
		negationTokens:  toSet(v.NegationTokens),
		negativePhrases: phrases,
		difficultBreeds: toSet(v.DifficultBreeds),
		hypoallergenic:  toSet(v.HypoallergenicBreeds),
	}
}

func DefaultLexicon() *Lexicon {
	return NewLexicon(DefaultVocabulary())
}

func (lx *Lexicon) IsStopWord(token string) bool {
	_, ok := lx.stopWords[token]
	return ok
}

func (lx *Lexicon) IsNegation(token string) bool {
	_, ok := lx.negationTokens[token]
	return ok
}

func (lx *Lexicon) IsDifficultBreed(breed string) bool {
	_, ok := lx.difficultBreeds[normalizeTerm(breed)]
	return ok
}

func (lx *Lexicon) IsHypoallergenic(breed string) bool {
	_, ok := lx.hypoallergenic[normalizeTerm(breed)]
	return ok
}

func toSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, it := range items {
		if it = normalizeTerm(it); it != "" {
			out[it] = struct{}{}
		}
	}
	return out
}

func normalizeTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
