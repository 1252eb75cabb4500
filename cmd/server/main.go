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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cypherlabdev/prop-probability-service/internal/aggregator"
	"github.com/cypherlabdev/prop-probability-service/internal/config"
	httpHandler "github.com/cypherlabdev/prop-probability-service/internal/handler/http"
	"github.com/cypherlabdev/prop-probability-service/internal/messaging"
	"github.com/cypherlabdev/prop-probability-service/internal/metrics"
	"github.com/cypherlabdev/prop-probability-service/internal/service"
	"github.com/cypherlabdev/prop-probability-service/internal/store"
	"github.com/cypherlabdev/prop-probability-service/pkg/adjustment"
)

// readinessCheck reports whether a dependency can serve traffic
type readinessCheck struct {
	name string
	ping func(ctx context.Context) error
}

func main() {
	configPath := os.Getenv("PROP_ENGINE_CONFIG")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger := setupLogger(cfg.Logging)
	logger.Info().Str("data_source", cfg.Data.Source).Msg("starting prop-probability-service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var checks []readinessCheck

	// Record store
	var records store.Store
	var teams adjustment.TeamTable = adjustment.DefaultTeamTable()
	var scheduler *cron.Cron

	switch cfg.Data.Source {
	case "postgres":
		pool, err := newPostgresPool(ctx, cfg.Postgres)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
		}
		defer pool.Close()
		logger.Info().Msg("connected to PostgreSQL")

		pg := store.NewPostgresStore(pool)
		records = pg
		checks = append(checks, readinessCheck{name: "postgres", ping: pg.Ping})

		teamCache := store.NewTeamTableCache(pg, adjustment.DefaultTeamTable(), cfg.Data.TeamCacheTTL, logger)
		if err := teamCache.Refresh(ctx); err != nil {
			logger.Warn().Err(err).Msg("initial team table load failed, using 2023-24 defaults")
		}
		teams = teamCache

		if cfg.Data.TeamRefreshCron != "" {
			scheduler = cron.New()
			if _, err := scheduler.AddFunc(cfg.Data.TeamRefreshCron, func() {
				if err := teamCache.Refresh(ctx); err != nil {
					logger.Error().Err(err).Msg("scheduled team table refresh failed")
				}
			}); err != nil {
				logger.Fatal().Err(err).Msg("invalid team refresh schedule")
			}
			scheduler.Start()
			logger.Info().Str("schedule", cfg.Data.TeamRefreshCron).Msg("team table refresh scheduled")
		}

	default:
		mem := store.NewMemoryStore()
		if cfg.Data.SeedFile != "" {
			seed, err := store.LoadSeedFile(cfg.Data.SeedFile)
			if err != nil {
				logger.Fatal().Err(err).Msg("failed to load seed file")
			}
			if err := mem.AppendGames(ctx, seed); err != nil {
				logger.Fatal().Err(err).Msg("failed to seed memory store")
			}
			logger.Info().Int("records", len(seed)).Int("players", mem.PlayerCount()).Msg("memory store seeded")
		}
		records = mem
	}

	// Redis read-through cache
	if cfg.Redis.Enabled {
		cached := store.NewCachedStore(records, store.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		}, logger)
		defer cached.Close()

		if err := cached.Ping(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		checks = append(checks, readinessCheck{name: "redis", ping: cached.Ping})
		records = cached
	}

	// Engine
	agg := aggregator.NewAggregator(records, logger)
	engine := adjustment.NewEngine(cfg.Engine.ToEngineParams(), teams, logger)
	evaluator := service.NewLegEvaluator(agg, engine, cfg.Engine.ToEvaluatorParams(), logger)
	composer := service.NewParlayComposer(evaluator, cfg.Engine.ToComposerParams(), logger)
	logger.Info().Msg("probability engine initialized")

	// Kafka ingestion
	if cfg.Kafka.Enabled {
		consumer := messaging.NewKafkaConsumer(
			messaging.KafkaConsumerConfig{
				Brokers: cfg.Kafka.Brokers,
				Topic:   cfg.Kafka.Topic,
				GroupID: cfg.Kafka.GroupID,
			},
			records,
			logger,
		)
		defer consumer.Close()

		go func() {
			if err := consumer.Start(ctx); err != nil {
				logger.Error().Err(err).Msg("Kafka consumer failed")
			}
		}()
	}

	// HTTP
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(metrics.Middleware(routePattern))

	router.Get("/health", healthHandler)
	router.Get("/ready", readyHandler(checks))
	router.Handle("/metrics", metrics.Handler())

	httpHandler.NewPropHandler(evaluator, composer, agg, logger).RegisterRoutes(router)
	logger.Info().Msg("API routes registered")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("shutting down gracefully...")
	cancel()

	if scheduler != nil {
		<-scheduler.Stop().Done()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	logger.Info().Msg("shutdown complete")
}

// setupLogger configures the logger based on config
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return log.Logger.With().Str("service", "prop-probability").Logger()
}

func newPostgresPool(ctx context.Context, cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("invalid postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return pool, nil
}

// routePattern labels metrics with the matched chi route, not the raw path
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// healthHandler returns 200 if service is running
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// readyHandler returns 200 when every dependency answers
func readyHandler(checks []readinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, c := range checks {
			if err := c.ping(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(c.name + " unavailable"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	}
}
