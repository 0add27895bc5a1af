package recommendations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"petmatch/internal/domain/pets"
	"petmatch/internal/platform/logger"
	"petmatch/internal/platform/metrics"
	"petmatch/internal/recommend"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInternal     = errors.New("internal error")
)

type Deps struct {
	Users   UserDirectory
	Likes   LikeSource
	Pets    PetSource
	Intakes IntakeSource

	Engine *recommend.Engine
	// Cache puede ser nil.
	Cache Cache
	Log   logger.Logger

	MaxLimit int
}

type Service struct {
	users   UserDirectory
	likes   LikeSource
	pets    PetSource
	intakes IntakeSource

	engine *recommend.Engine
	cache  Cache
	log    logger.Logger

	maxLimit int
	now      func() time.Time
}

func NewService(d Deps) *Service {
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	engine := d.Engine
	if engine == nil {
		engine = recommend.NewEngine(recommend.DefaultConfig(), nil, log)
	}
	maxLimit := d.MaxLimit
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	return &Service{
		users:    d.Users,
		likes:    d.Likes,
		pets:     d.Pets,
		intakes:  d.Intakes,
		engine:   engine,
		cache:    d.Cache,
		log:      log.With(map[string]any{"component": "recommendations"}),
		maxLimit: maxLimit,
		now:      time.Now,
	}
}

// ClampLimit aplica default y tope.
func (s *Service) ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}

// Recommend devuelve hasta limit mascotas para userID.
// Errores: ErrUserNotFound, ErrInternal (ya logueado). Un pool vacío no es error.
func (s *Service) Recommend(ctx context.Context, userID string, limit int) (Result, error) {
	userID = strings.TrimSpace(userID)
	limit = s.ClampLimit(limit)

	res, err := s.recommend(ctx, userID, limit)
	if err == nil || errors.Is(err, ErrUserNotFound) {
		return res, err
	}
	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}
	s.log.Error("recommendation failed", map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})
	return Result{}, fmt.Errorf("%w: %v", ErrInternal, err)
}

func (s *Service) recommend(ctx context.Context, userID string, limit int) (Result, error) {
	if userID == "" {
		return Result{}, ErrUserNotFound
	}
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("lookup user: %w", err)
	}
	if !ok {
		return Result{}, ErrUserNotFound
	}

	cached, hit, err := s.fromCache(ctx, userID, limit)
	if err != nil {
		return Result{}, err
	}
	if hit {
		return cached, nil
	}

	// La versión se lee antes que los likes: un Invalidate posterior descarta la escritura.
	version, cacheable := s.cacheVersion(ctx, userID)

	start := s.now()

	likedIDs, err := s.likes.LikedPetIDs(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("load likes: %w", err)
	}
	liked, err := s.pets.GetMany(ctx, likedIDs)
	if err != nil {
		return Result{}, fmt.Errorf("load liked pets: %w", err)
	}
	intake, err := s.intakes.Find(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("load intake: %w", err)
	}
	candidates, err := s.pets.Candidates(ctx, userID, likedIDs)
	if err != nil {
		return Result{}, fmt.Errorf("load candidates: %w", err)
	}

	if len(candidates) == 0 {
		metrics.RecommendationCandidates.Observe(0)
		return Result{Items: []Item{}, Message: MessageNoCandidates}, nil
	}

	ranked, err := s.engine.Rank(ctx, recommend.Input{
		UserID:     userID,
		Intake:     intake,
		Liked:      liked,
		Candidates: candidates,
		Limit:      limit,
	})
	if err != nil {
		return Result{}, fmt.Errorf("rank: %w", err)
	}

	metrics.RecommendationDuration.Observe(s.now().Sub(start).Seconds())
	metrics.RecommendationCandidates.Observe(float64(ranked.Candidates))
	metrics.RecommendationDisqualified.Add(float64(ranked.Disqualified))
	metrics.RecommendationScoringFailures.Add(float64(ranked.Failed))

	out := Result{Items: make([]Item, 0, len(ranked.Items))}
	for _, sc := range ranked.Items {
		out.Items = append(out.Items, Item{
			Pet:           sc.Pet,
			Score:         sc.Score,
			Compatibility: sc.Compatibility,
			Preference:    sc.Preference,
			Reasons:       sc.Reasons,
		})
	}
	if len(out.Items) == 0 {
		out.Message = MessageNoMatches
	}

	s.log.Debug("recommendations computed", map[string]any{
		"user_id":      userID,
		"limit":        limit,
		"candidates":   ranked.Candidates,
		"disqualified": ranked.Disqualified,
		"failed":       ranked.Failed,
		"returned":     len(out.Items),
		"liked":        len(liked),
		"has_intake":   intake != nil,
	})

	if cacheable {
		s.toCache(ctx, userID, limit, version, out)
	}
	return out, nil
}

// Invalidate descarta resultados cacheados del usuario.
// Se engancha a likes/intakes; nunca falla hacia el caller.
func (s *Service) Invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.log.Warn("recommendation cache invalidate failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
}

// fromCache devuelve un resultado cacheado solo si todas sus mascotas siguen
// siendo candidatas; si alguna dejó de estar disponible se descarta la entrada.
func (s *Service) fromCache(ctx context.Context, userID string, limit int) (Result, bool, error) {
	if s.cache == nil {
		return Result{}, false, nil
	}
	r, hit, err := s.cache.Get(ctx, userID, limit)
	switch {
	case err != nil:
		metrics.RecommendationCache.WithLabelValues("error").Inc()
		s.log.Warn("recommendation cache get failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return Result{}, false, nil
	case !hit:
		metrics.RecommendationCache.WithLabelValues("miss").Inc()
		return Result{}, false, nil
	}

	fresh, err := s.stillCandidates(ctx, userID, r)
	if err != nil {
		return Result{}, false, fmt.Errorf("check cached pets: %w", err)
	}
	if !fresh {
		metrics.RecommendationCache.WithLabelValues("stale").Inc()
		s.log.Debug("cached recommendations discarded", map[string]any{"user_id": userID, "limit": limit})
		s.Invalidate(ctx, userID)
		return Result{}, false, nil
	}

	metrics.RecommendationCache.WithLabelValues("hit").Inc()
	if r.Items == nil {
		r.Items = []Item{}
	}
	return r, true, nil
}

// stillCandidates relee las mascotas del resultado: deben existir, estar en
// adopción y no ser del usuario.
func (s *Service) stillCandidates(ctx context.Context, userID string, r Result) (bool, error) {
	if len(r.Items) == 0 {
		return true, nil
	}
	ids := make([]string, 0, len(r.Items))
	for _, it := range r.Items {
		ids = append(ids, it.Pet.ID)
	}
	current, err := s.pets.GetMany(ctx, ids)
	if err != nil {
		return false, err
	}
	byID := make(map[string]pets.Pet, len(current))
	for _, p := range current {
		byID[p.ID] = p
	}
	for _, id := range ids {
		p, ok := byID[id]
		if !ok || !p.AvailableForAdoption || p.OwnerUserID == userID {
			return false, nil
		}
	}
	return true, nil
}

func (s *Service) cacheVersion(ctx context.Context, userID string) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	v, err := s.cache.Version(ctx, userID)
	if err != nil {
		metrics.RecommendationCache.WithLabelValues("error").Inc()
		s.log.Warn("recommendation cache version failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return 0, false
	}
	return v, true
}

func (s *Service) toCache(ctx context.Context, userID string, limit int, version int64, r Result) {
	err := s.cache.Set(ctx, userID, limit, version, r)
	switch {
	case err == nil:
	case errors.Is(err, ErrStaleCache):
		metrics.RecommendationCache.WithLabelValues("skipped").Inc()
		s.log.Debug("recommendation cache write skipped", map[string]any{"user_id": userID, "limit": limit})
	default:
		s.log.Warn("recommendation cache set failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
}
