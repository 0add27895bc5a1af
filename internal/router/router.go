package router

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	_ "petmatch/docs"

	mem "petmatch/internal/adapters/storage/memory"
	pg "petmatch/internal/adapters/storage/postgres"
	"petmatch/internal/domain/intakes"
	"petmatch/internal/domain/likes"
	"petmatch/internal/domain/pets"
	"petmatch/internal/domain/recommendations"
	"petmatch/internal/domain/users"
	"petmatch/internal/middleware"
	"petmatch/internal/platform/logger"
	"petmatch/internal/ports/auth"
	"petmatch/internal/recommend"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: cache de recomendaciones.
	Cache recommendations.Cache

	Logger logger.Logger
	Engine *recommend.Engine

	MaxLimit           int
	CORSOrigins        []string
	RateLimitPerMinute int // 0 = sin límite
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Debug-User-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Use(middleware.AuthContext(opts.AuthVerifier, log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		userRepo   users.Repository
		petRepo    pets.Repository
		likeRepo   likes.Repository
		intakeRepo intakes.Repository
	)

	if opts.DB != nil {
		userRepo = pg.NewUsersRepo(opts.DB)
		petRepo = pg.NewPetsRepo(opts.DB)
		likeRepo = pg.NewLikesRepo(opts.DB)
		intakeRepo = pg.NewIntakesRepo(opts.DB)
	} else {
		userRepo = mem.NewUserRepo()
		petRepo = mem.NewPetRepo()
		likeRepo = mem.NewLikeRepo()
		intakeRepo = mem.NewIntakeRepo()
	}

	// Services por módulo
	usersSvc := users.NewService(userRepo)
	petsSvc := pets.NewService(petRepo)
	likesSvc := likes.NewService(likeRepo, petsSvc, pets.ErrNotFound)
	intakesSvc := intakes.NewService(intakeRepo)
	recsSvc := recommendations.NewService(recommendations.Deps{
		Users:    usersSvc,
		Likes:    likesSvc,
		Pets:     petsSvc,
		Intakes:  intakesSvc,
		Engine:   opts.Engine,
		Cache:    opts.Cache,
		Log:      log,
		MaxLimit: opts.MaxLimit,
	})

	// Cambios que afectan recomendaciones ya cacheadas
	likesSvc.OnChange(recsSvc.Invalidate)
	intakesSvc.OnChange(recsSvc.Invalidate)
	petsSvc.OnAvailabilityChange(func(ctx context.Context, petID string) {
		// los resultados cacheados se revalidan contra el estado actual al leerlos
		log.Debug("pet availability changed", map[string]any{"pet_id": petID})
	})

	var limiter func(http.Handler) http.Handler
	if opts.RateLimitPerMinute > 0 {
		limiter = httprate.Limit(
			opts.RateLimitPerMinute,
			time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint),
		)
	}

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc)
	pets.RegisterRoutes(r, petsSvc)
	likes.RegisterRoutes(r, likesSvc)
	intakes.RegisterRoutes(r, intakesSvc)
	recommendations.RegisterRoutes(r, recsSvc, limiter)

	return r
}
