package recommend

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"petmatch/internal/domain/intakes"
	"petmatch/internal/domain/pets"
	"petmatch/internal/platform/logger"
)

// ErrScoring envuelve un fallo al puntuar un candidato puntual.
var ErrScoring = errors.New("scoring failure")

// Config del motor. Los pesos combinan compatibilidad y preferencia en el total.
type Config struct {
	CompatibilityWeight float64
	PreferenceWeight    float64
	Caps                Caps
}

func DefaultConfig() Config {
	return Config{
		CompatibilityWeight: 0.6,
		PreferenceWeight:    0.4,
		Caps:                DefaultCaps(),
	}
}

// Input es todo lo que el motor necesita, ya materializado en memoria.
type Input struct {
	UserID string

	// nil = el usuario no completó el cuestionario
	Intake *intakes.Intake

	Liked      []pets.Pet
	Candidates []pets.Pet
	Limit      int
}

// Scored es un candidato recomendado con su desglose.
type Scored struct {
	Pet           pets.Pet
	Compatibility float64
	Preference    float64
	Score         float64
	Reasons       []string
}

// Result agrega contadores útiles para métricas y logs.
type Result struct {
	Items []Scored

	Candidates   int // elegibles evaluados
	Disqualified int
	Failed       int
}

type Engine struct {
	cfg Config
	lx  *Lexicon
	log logger.Logger

	// score permite reemplazar el cálculo por candidato (tests de fallos).
	score func(p pets.Pet, in *intakes.Intake, prof Profile) (Scored, Compatibility)
}

func NewEngine(cfg Config, lx *Lexicon, log logger.Logger) *Engine {
	if lx == nil {
		lx = DefaultLexicon()
	}
	if log == nil {
		log = logger.Nop()
	}
	e := &Engine{cfg: cfg, lx: lx, log: log}
	e.score = e.scoreCandidate
	return e
}

// Rank ejecuta el pipeline: perfil -> scores -> orden -> diversidad -> razones.
// Un candidato que falla se omite; solo la cancelación de ctx corta el lote.
func (e *Engine) Rank(ctx context.Context, in Input) (Result, error) {
	prof := ExtractProfile(in.Liked, e.lx)

	excluded := make(map[string]struct{}, len(in.Liked))
	for _, p := range in.Liked {
		excluded[p.ID] = struct{}{}
	}

	var res Result
	scored := make([]Scored, 0, len(in.Candidates))

	for _, p := range in.Candidates {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if !eligible(p, in.UserID, excluded) {
			continue
		}
		res.Candidates++

		s, compat, err := e.safeScore(p, in.Intake, prof)
		if err != nil {
			res.Failed++
			e.log.Warn("recommendation scoring failed", map[string]any{
				"user_id": in.UserID,
				"pet_id":  p.ID,
				"error":   err.Error(),
			})
			continue
		}
		if compat.IsDisqualified() {
			res.Disqualified++
			continue
		}
		scored = append(scored, s)
	}

	slices.SortStableFunc(scored, func(a, b Scored) int {
		return cmp.Compare(b.Score, a.Score)
	})

	res.Items = Diversify(scored, in.Limit, e.cfg.Caps)
	for i := range res.Items {
		res.Items[i].Reasons = Reasons(res.Items[i].Pet, in.Intake, prof, e.lx)
	}
	return res, nil
}

func (e *Engine) scoreCandidate(p pets.Pet, in *intakes.Intake, prof Profile) (Scored, Compatibility) {
	compat := ScoreCompatibility(p, in, e.lx)
	if compat.IsDisqualified() {
		return Scored{Pet: p}, compat
	}

	pref := ScorePreference(p, prof, e.lx)
	return Scored{
		Pet:           p,
		Compatibility: compat.Value(),
		Preference:    pref,
		Score:         compat.Value()*e.cfg.CompatibilityWeight + pref*e.cfg.PreferenceWeight,
	}, compat
}

// safeScore convierte un panic del cálculo en error para no tumbar el request.
func (e *Engine) safeScore(p pets.Pet, in *intakes.Intake, prof Profile) (s Scored, c Compatibility, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrScoring, r)
		}
	}()
	s, c = e.score(p, in, prof)
	return s, c, nil
}

func eligible(p pets.Pet, userID string, liked map[string]struct{}) bool {
	if !p.AvailableForAdoption {
		return false
	}
	if userID != "" && p.OwnerUserID == userID {
		return false
	}
	_, already := liked[p.ID]
	return !already
}
