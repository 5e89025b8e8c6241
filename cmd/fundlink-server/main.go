// cmd/fundlink-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"fundlink/internal/api"
	"fundlink/internal/common/config"
	"fundlink/internal/common/database"
	"fundlink/internal/common/logger"
	"fundlink/internal/common/observability"
	"fundlink/internal/provider"
	"fundlink/internal/ratelimit"
	"fundlink/internal/scoring/match"
	"fundlink/internal/scoring/readiness"
	"fundlink/internal/storage"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting fundlink server...",
		zap.String("provider", cfg.AI.Provider),
		zap.Int("port", cfg.Server.Port),
	)

	obs := observability.New("fundlink-server")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Redis (optional) ---
	var redisClient *database.RedisClient
	if cfg.Database.Redis.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redisClient.Close()
		zapLog.Info("Redis connected successfully")
	}

	// --- PostgreSQL (optional) ---
	var pg *database.PostgresClient
	if cfg.Database.Postgres.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		zapLog.Info("PostgreSQL connected successfully")
	}

	// --- Scoring core ---
	engine := match.NewEngine(log)
	evaluator := readiness.NewEvaluator(cfg.Scoring.ReadinessBase, log)
	demo := provider.NewDemoProvider(evaluator)

	active, err := buildActiveProvider(ctx, cfg, demo)
	if err != nil {
		zapLog.Fatal("provider init failed", zap.Error(err))
	}
	gateway := provider.NewGateway(active, demo, cfg.AI, cfg.RateLimit, log)

	// --- Rate limiting ---
	var store ratelimit.Store = ratelimit.NewMemoryStore()
	if cfg.RateLimit.Backend == "redis" && redisClient != nil {
		store = ratelimit.NewRedisStore(redisClient.GetClient())
	}
	limiter := ratelimit.NewLimiter(store, cfg.RateLimit.MaxRequests,
		config.GetDuration(cfg.RateLimit.WindowMs), log)

	// --- Profile storage (optional) ---
	var profiles *storage.ProfileRepository
	if pg != nil {
		var cache *redis.Client
		if redisClient != nil {
			cache = redisClient.GetClient()
		}
		profiles = storage.NewProfileRepository(pg.GetDB(), cache, 10*time.Minute, log)
	}

	// --- HTTP server ---
	server := api.NewServer(engine, gateway, profiles, cfg, log)
	router := api.NewRouter(server, limiter, log)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handlers.LoggingHandler(os.Stdout, router),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zapLog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("Server stopped")
}

// buildActiveProvider selects the configured backend. Demo needs no
// credentials; external providers fail fast on missing configuration.
func buildActiveProvider(ctx context.Context, cfg *config.Config, demo *provider.DemoProvider) (provider.Provider, error) {
	switch cfg.AI.Provider {
	case "openai":
		return provider.NewOpenAIProvider(cfg.AI), nil
	case "gemini":
		return provider.NewGeminiProvider(ctx, cfg.AI.Gemini.APIKey, cfg.AI.Gemini.Model)
	default:
		return demo, nil
	}
}
