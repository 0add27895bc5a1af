// @title PetMatch API
// @version 1.0
// @description Adopción de mascotas: publicaciones, me gusta, cuestionario y recomendaciones.
// @BasePath /
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"petmatch/internal/adapters/auth/jwtauth"
	"petmatch/internal/adapters/cache/rediscache"
	pg "petmatch/internal/adapters/storage/postgres"
	"petmatch/internal/config"
	"petmatch/internal/domain/recommendations"
	"petmatch/internal/platform/logger"
	"petmatch/internal/ports/auth"
	"petmatch/internal/recommend"
	"petmatch/internal/router"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *sql.DB
	if cfg.Database.DSN != "" {
		db, err = pg.Open(ctx, cfg.Database.DSN, pg.PoolOptions{
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
		})
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		if cfg.Database.AutoMigrate {
			if err := pg.Migrate(ctx, db); err != nil {
				return err
			}
		}
		log.Info("using postgres storage", nil)
	} else {
		log.Warn("DB_DSN not set, using in-memory storage", nil)
	}

	var cache recommendations.Cache
	if cfg.Cache.Enabled {
		c, rdb, err := rediscache.Dial(ctx, rediscache.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
			TTL:      cfg.Cache.TTL,
		})
		if err != nil {
			// sin cache se sigue funcionando
			log.Warn("redis unavailable, recommendations cache disabled", map[string]any{"error": err.Error()})
		} else {
			defer rdb.Close()
			cache = c
		}
	}

	var verifier auth.AuthVerifier
	if cfg.Security.JWTSecret != "" {
		v, err := jwtauth.NewVerifier(jwtauth.Options{
			Secret: cfg.Security.JWTSecret,
			Issuer: cfg.Security.JWTIssuer,
		})
		if err != nil {
			return err
		}
		verifier = v
	} else {
		log.Warn("JWT_SECRET not set, dev auth via X-Debug-User-ID header", nil)
	}

	vocab, err := recommend.LoadVocabulary(cfg.Recommend.VocabularyPath)
	if err != nil {
		return fmt.Errorf("load vocabulary: %w", err)
	}
	engine := recommend.NewEngine(cfg.Engine(), recommend.NewLexicon(vocab), log)

	r := router.NewRouter(router.Options{
		AuthVerifier:       verifier,
		DB:                 db,
		Cache:              cache,
		Logger:             log,
		Engine:             engine,
		MaxLimit:           cfg.Recommend.MaxLimit,
		CORSOrigins:        cfg.Security.CORSOrigins,
		RateLimitPerMinute: cfg.Security.RateLimitPerMinute,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
