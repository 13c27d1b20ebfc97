package commands

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
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thesisdesk/titledex/internal/config"
	"github.com/thesisdesk/titledex/internal/db"
	dbBadger "github.com/thesisdesk/titledex/internal/db/badger"
	dbRedis "github.com/thesisdesk/titledex/internal/db/redis"
	"github.com/thesisdesk/titledex/internal/domain"
	"github.com/thesisdesk/titledex/internal/domain/risk"
	"github.com/thesisdesk/titledex/internal/ingest"
	logpkg "github.com/thesisdesk/titledex/internal/logger"
	"github.com/thesisdesk/titledex/internal/metrics"
	corpusrepo "github.com/thesisdesk/titledex/internal/repository/corpus"
	chiTransport "github.com/thesisdesk/titledex/internal/transport/chi"
	checkuc "github.com/thesisdesk/titledex/internal/usecase/check"
	corpusuc "github.com/thesisdesk/titledex/internal/usecase/corpus"
	healthuc "github.com/thesisdesk/titledex/internal/usecase/health"
	"github.com/thesisdesk/titledex/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting titledex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	store, err := openStore(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register check metrics explicitly (no init())
	metrics.RegisterCheckMetrics()

	// Repositories and use case services — composition root
	corpusRepo := corpusrepo.New(store)
	fetcher := ingest.NewFetcher(logger)
	corpusSvc := corpusuc.New(corpusRepo, fetcher, logger).WithStatsCache(store)

	thresholds, err := risk.NewThresholds(cfg.Risk.HighThreshold, cfg.Risk.MediumThreshold)
	if err != nil {
		logger.Fatal("Invalid risk thresholds", zap.Error(err))
	}
	checkSvc := checkuc.New(corpusSvc).
		WithThresholds(thresholds).
		WithRankConfig(domain.RankConfig{
			DefaultTopK: cfg.Rank.DefaultTopK,
			MaxTopK:     cfg.Rank.MaxTopK,
		})
	checker := checkuc.NewInstrumentedChecker(checkSvc, logger)

	healthSvc := healthuc.New(store, corpusRepo, cfg.Corpus.SeedName)

	// Seed or refresh the default corpus before accepting traffic.
	if err := bootstrapCorpus(ctx, corpusSvc, cfg.Corpus, logger); err != nil {
		logger.Fatal("Failed to bootstrap corpus", zap.Error(err))
	}

	server := chiTransport.NewServer(checker, corpusSvc, healthSvc, logger)

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
	return nil
}

// openStore creates the configured store backend.
func openStore(cfg config.DatabaseConfig) (db.Store, error) {
	switch cfg.Driver {
	case "redis":
		return dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
	case "badger":
		return dbBadger.NewStore(dbBadger.Config{
			Dir:      cfg.Dir,
			InMemory: cfg.Dir == "",
		})
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// bootstrapCorpus ensures the seed corpus exists: from the configured sheet
// URL when set, otherwise the stock dataset (only when absent).
func bootstrapCorpus(
	ctx context.Context, corpora *corpusuc.Service, cfg config.CorpusConfig, logger *zap.Logger,
) error {
	if cfg.SourceURL != "" {
		c, err := corpora.LoadFromURL(ctx, cfg.SeedName, cfg.SourceURL)
		if err != nil {
			return fmt.Errorf("load corpus from %s: %w", cfg.SourceURL, err)
		}
		logger.Info("Corpus loaded from sheet",
			zap.String("corpus", cfg.SeedName),
			zap.Int("size", c.Size()),
		)
		return nil
	}

	seeded, err := corpora.Seed(ctx, cfg.SeedName)
	if err != nil {
		return fmt.Errorf("seed corpus: %w", err)
	}
	if seeded {
		logger.Info("Seeded stock corpus", zap.String("corpus", cfg.SeedName))
	}
	return nil
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

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
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
