package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/cache"
	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/config"
	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/engine"
	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/events"
	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/logging"
	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/repository"
	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/service"
	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/travel/activity"
	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/travel/flight"
	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/travel/stay"
	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/seeds"
)

func main() {
	cfg, err := config.Load(os.Getenv("DS_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ------------ PostgreSQL ---------------
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("parse database config")
	}
	poolConfig.MaxConns = int32(cfg.DBPoolSize)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()

	if err := waitForDB(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("database not ready")
	}
	log.Info().Msg("connected to PostgreSQL")

	// ------------ Migrations ---------------
	if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
		if err := migrateDown(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migrate down")
		}
		log.Info().Msg("migrations dropped")
		return
	}

	if err := migrateUp(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migrate up")
	}

	// ------------ Seed Data ---------------
	if err := checkSeed(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("seed database")
	}

	// ------------ Redis ---------------
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	recCache := cache.NewCache(redisClient, cfg.CacheTTL)
	if err := recCache.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("redis not ready")
	}
	log.Info().Msg("connected to Redis")

	// ------------ Engines ---------------
	engines, err := buildEngines(cfg.EngineConfigDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build engines")
	}

	// ------------ Event bus ---------------
	bus := events.NewBus(nil)
	defer bus.Close()

	svc := service.New(repository.New(pool), recCache, bus, engines, log)

	// ------------ Ops endpoints ---------------
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		if err := pool.Ping(context.Background()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("ops server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ops server")
		}
	}()

	// ------------ Precompute loop ---------------
	runPrecompute(ctx, svc, cfg, log)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("ops server shutdown")
	}
	log.Info().Msg("worker stopped")
}

// runPrecompute runs one batch immediately, then on every tick until
// the context is cancelled.
func runPrecompute(ctx context.Context, svc *service.Service, cfg *config.Config, log zerolog.Logger) {
	opts := service.BatchOptions{
		PageSize:    cfg.Worker.PageSize,
		Concurrency: cfg.Worker.Concurrency,
		ResultLimit: cfg.Worker.ResultLimit,
	}

	ticker := time.NewTicker(cfg.Worker.Interval)
	defer ticker.Stop()

	for {
		if _, err := svc.PrecomputeAll(ctx, opts); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Msg("precompute run failed")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func buildEngines(dir string, log zerolog.Logger) ([]*engine.Engine, error) {
	type adapterDefaults struct {
		adapter engine.DomainAdapter
		cfg     engine.Config
	}
	specs := []adapterDefaults{
		{activity.Adapter{}, activity.DefaultConfig()},
		{flight.Adapter{}, flight.DefaultConfig()},
		{stay.Adapter{}, stay.DefaultConfig()},
	}

	engines := make([]*engine.Engine, 0, len(specs))
	for _, s := range specs {
		path := ""
		if dir != "" {
			path = filepath.Join(dir, s.adapter.Domain()+".yaml")
		}
		cfg, err := config.LoadEngine(path, s.cfg)
		if err != nil {
			return nil, fmt.Errorf("domain %s: %w", s.adapter.Domain(), err)
		}
		eng, err := engine.New(s.adapter, cfg, log)
		if err != nil {
			return nil, err
		}
		engines = append(engines, eng)
	}
	return engines, nil
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		log.Info().Int("attempt", i+1).Msg("waiting for database")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(1 * time.Second):
		}
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func migrateDown(ctx context.Context, pool *pgxpool.Pool) error {
	sql, err := os.ReadFile("migrations/create_tables.down.sql")
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	return nil
}

func migrateUp(ctx context.Context, pool *pgxpool.Pool) error {
	sql, err := os.ReadFile("migrations/create_tables.up.sql")
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	return nil
}

func checkSeed(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM user_vectors").Scan(&count); err != nil {
		return fmt.Errorf("check user vectors count: %w", err)
	}
	if count > 0 {
		log.Info().Int("users", count).Msg("database already seeded, skipping")
		return nil
	}
	return seeds.Setup(ctx, pool)
}
