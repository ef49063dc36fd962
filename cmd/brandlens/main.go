package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/brandlens/brandlens/internal/config"
	"github.com/brandlens/brandlens/internal/db"
	dbMemory "github.com/brandlens/brandlens/internal/db/memory"
	dbRedis "github.com/brandlens/brandlens/internal/db/redis"
	"github.com/brandlens/brandlens/internal/domain"
	logpkg "github.com/brandlens/brandlens/internal/logger"
	"github.com/brandlens/brandlens/internal/metrics"
	"github.com/brandlens/brandlens/internal/repository/answers"
	"github.com/brandlens/brandlens/internal/repository/classcache"
	"github.com/brandlens/brandlens/internal/repository/conscache"
	"github.com/brandlens/brandlens/internal/repository/results"
	chiTransport "github.com/brandlens/brandlens/internal/transport/chi"
	cohereTransport "github.com/brandlens/brandlens/internal/transport/cohere"
	openaiTransport "github.com/brandlens/brandlens/internal/transport/openai"
	citationuc "github.com/brandlens/brandlens/internal/usecase/citation"
	consolidateduc "github.com/brandlens/brandlens/internal/usecase/consolidated"
	scoringuc "github.com/brandlens/brandlens/internal/usecase/scoring"
	sentimentuc "github.com/brandlens/brandlens/internal/usecase/sentiment"
	"github.com/brandlens/brandlens/internal/version"
)

func main() {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting brandlens scoring server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("brand", cfg.Entities.Brand.CanonicalName),
	)

	// Create database store based on driver
	var store db.Store
	switch cfg.Database.Driver {
	case "redis":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Username: cfg.Database.Username,
			Password: cfg.Database.Password,
			DB:       cfg.Database.DB,
		})
	case "memory":
		store = dbMemory.NewStore()
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register pipeline metrics explicitly (no init())
	metrics.RegisterPipelineMetrics()

	prefix := cfg.Storage.KeyPrefix

	// LLM providers
	openaiCompleter := openaiTransport.NewCompleter(&openaiTransport.Config{
		APIKey:   cfg.Providers.OpenAI.APIKey,
		BaseURL:  cfg.Providers.OpenAI.BaseURL,
		Model:    cfg.Providers.OpenAI.Model,
		Provider: "openai",
		Timeout:  time.Duration(cfg.Providers.OpenAI.TimeoutSec) * time.Second,
		Logger:   logger,
	})
	cohereCompleter := cohereTransport.NewCompleter(&cohereTransport.Config{
		APIKey:  cfg.Providers.Cohere.APIKey,
		Model:   cfg.Providers.Cohere.Model,
		Timeout: time.Duration(cfg.Providers.Cohere.TimeoutSec) * time.Second,
		Logger:  logger,
	})

	// Repositories
	answersRepo := answers.New(store, prefix)
	resultsRepo := results.New(store, prefix)
	classCache := classcache.New(store, prefix, metrics.ClassificationCacheTotal, logger)
	consCache := conscache.New(
		store, prefix,
		time.Duration(cfg.Consolidated.CacheTTLSec)*time.Second,
		metrics.ConsolidatedCacheTotal, logger,
	)

	// Citation classification
	extraTable := make(map[string]domain.Category, len(cfg.Citation.Hardcoded))
	for d, c := range cfg.Citation.Hardcoded {
		extraTable[d] = domain.Category(c)
	}
	citationSvc := citationuc.New(classCache, extraTable, openaiCompleter, *cfg.Citation.AIEnabled, logger)

	// Sentiment provider chain in configured order
	providers := make([]sentimentuc.Provider, 0, len(cfg.Sentiment.ProviderOrder))
	for _, name := range cfg.Sentiment.ProviderOrder {
		switch name {
		case "openai":
			providers = append(providers, sentimentuc.NewLLMProvider("openai", openaiCompleter))
		case "cohere":
			providers = append(providers, sentimentuc.NewLLMProvider("cohere", cohereCompleter))
		case "legacy":
			providers = append(providers, sentimentuc.NewChunkedProvider(
				sentimentuc.NewLLMProvider("legacy", openaiCompleter),
				cfg.Sentiment.LegacyMaxChars,
			))
		default:
			logger.Fatal("Unknown sentiment provider", zap.String("provider", name))
		}
	}
	sentimentSvc := sentimentuc.New(providers, logger)

	// Consolidated fast path
	var consolidatedSvc scoringuc.ConsolidatedAnalyzer
	if *cfg.Consolidated.Enabled {
		consolidatedSvc = consolidateduc.New(
			openaiCompleter, consCache, classCache, cfg.Consolidated.MaxTokens, logger,
		)
	}

	scoringSvc := scoringuc.New(
		answersRepo, resultsRepo, consolidatedSvc, citationSvc, sentimentSvc,
		cfg.Entities.Brand, cfg.Entities.Competitors,
		cfg.Scoring.Concurrency, logger,
	)

	server := chiTransport.NewServer(scoringSvc, resultsRepo, store, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
