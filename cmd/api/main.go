package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"solar_potential_backend/internal/adapters"
	"solar_potential_backend/internal/estimation"
	"solar_potential_backend/internal/estimation/repository"
	"solar_potential_backend/internal/estimation/service"
	apphttp "solar_potential_backend/internal/http"
	"solar_potential_backend/internal/http/router"
	"solar_potential_backend/internal/irradiance"
	"solar_potential_backend/internal/irradiance/cache"
	"solar_potential_backend/internal/maps"
	"solar_potential_backend/platform/config"
	"solar_potential_backend/platform/db"
	"solar_potential_backend/platform/logger"
	"solar_potential_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	overrides, err := config.LoadAssumptions(cfg.GetAssumptionsFile())
	if err != nil {
		log.Error("failed to load assumptions", "error", err, "file", cfg.GetAssumptionsFile())
		panic("failed to load assumptions: " + err.Error())
	}
	assumptions := estimation.AssumptionsFrom(overrides)

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	health := map[string]apphttp.HealthChecker{}

	var repo service.Repository
	if cfg.IsDatabaseEnabled() {
		pool := connectDatabase(ctx, cfg, log)
		defer pool.Close()
		repo = repository.New(pool)
		health["database"] = pool
	} else {
		log.Warn("DATABASE_URL not configured; estimates are kept in memory")
		repo = repository.NewMemory()
	}

	var store cache.Cache
	if cfg.IsRedisEnabled() {
		var redisStore *cache.Redis
		if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
			r, err := cache.NewRedisFromURL(ctx, cfg.GetRedisURL())
			if err != nil {
				return err
			}
			redisStore = r
			return nil
		}); err != nil {
			log.Error("failed to connect to redis", "error", err)
			panic("failed to connect to redis: " + err.Error())
		}
		defer func() {
			_ = redisStore.Close()
		}()
		store = redisStore
		health["redis"] = redisStore
		log.Info("irradiance cache backed by redis")
	} else {
		log.Warn("REDIS_URL not configured; irradiance cache is in-process")
		store = cache.NewMemory()
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	irradianceModule := irradiance.NewModule(cfg, store, val, log)

	// Anti-Corruption Layer: estimation reads irradiance through its own port
	irradianceReader := adapters.NewIrradianceAdapter(irradianceModule.Service())

	estimationModule, err := estimation.NewModule(repo, irradianceReader, val, assumptions, log)
	if err != nil {
		log.Error("failed to initialize estimation module", "error", err)
		panic("failed to initialize estimation module: " + err.Error())
	}

	mapsModule := maps.NewModule(cfg, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: health,
		Modules: []apphttp.Module{
			irradianceModule,
			estimationModule,
			mapsModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func connectDatabase(ctx context.Context, cfg *config.Config, log *logger.Logger) *pgxpool.Pool {
	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, cfg.MigrationsDir)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	log.Info("database connection established")
	return pool
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("%s: %w", name, lastErr)
}
