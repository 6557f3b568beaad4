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

	"github.com/Maldaris/europa-awareness-map/internal/config"
	"github.com/Maldaris/europa-awareness-map/internal/db"
	dbredis "github.com/Maldaris/europa-awareness-map/internal/db/redis"
	"github.com/Maldaris/europa-awareness-map/internal/domain"
	"github.com/Maldaris/europa-awareness-map/internal/loader"
	logpkg "github.com/Maldaris/europa-awareness-map/internal/logger"
	"github.com/Maldaris/europa-awareness-map/internal/metrics"
	"github.com/Maldaris/europa-awareness-map/internal/repository/embcache"
	poirepo "github.com/Maldaris/europa-awareness-map/internal/repository/poi"
	"github.com/Maldaris/europa-awareness-map/internal/scene"
	chiTransport "github.com/Maldaris/europa-awareness-map/internal/transport/chi"
	openaiEmb "github.com/Maldaris/europa-awareness-map/internal/transport/openai"
	describeuc "github.com/Maldaris/europa-awareness-map/internal/usecase/describe"
	healthuc "github.com/Maldaris/europa-awareness-map/internal/usecase/health"
	markeruc "github.com/Maldaris/europa-awareness-map/internal/usecase/marker"
	pickeruc "github.com/Maldaris/europa-awareness-map/internal/usecase/picker"
	"github.com/Maldaris/europa-awareness-map/internal/version"
)

// defaultEmbeddingDims matches text-embedding-3-small when the config
// leaves dimensions unset.
const defaultEmbeddingDims = 1536

func main() {
	// .env is optional; real deployments set the environment directly.
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

	logger.Info("Starting europad API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Valkey and Redis speak the same protocol and search module; one
	// rueidis-backed store serves both drivers.
	var store db.Store
	switch cfg.Database.Driver {
	case "valkey", "redis":
		store, err = dbredis.NewStore(dbredis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
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

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterPickMetrics()

	// Semantic search is optional; without an API key the describe
	// endpoint reports 501 and POIs are stored without description vectors.
	var embedder domain.Embedder
	descDim := 0
	if cfg.Embedding.APIKey != "" {
		embedder = buildEmbedder(cfg.Embedding, store, logger)
		descDim = cfg.Embedding.Dimensions
		if descDim == 0 {
			descDim = defaultEmbeddingDims
		}
		logger.Info("Embedder created",
			zap.String("provider", cfg.Embedding.Provider),
			zap.String("model", cfg.Embedding.Model),
			zap.Int("dimensions", descDim),
		)
	} else {
		logger.Info("Semantic search disabled: no embedding api_key configured")
	}

	repo := poirepo.New(store, descDim).WithHNSW(poirepo.HNSWConfig{
		M:           cfg.Index.HNSWM,
		EFConstruct: cfg.Index.HNSWEFConstruct,
	})
	if err := repo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure POI index", zap.Error(err))
	}

	if cfg.Seed.Path != "" {
		n, err := loader.New(repo, embedder, logger).LoadFile(ctx, cfg.Seed.Path)
		if err != nil {
			logger.Fatal("Failed to load seed catalog",
				zap.String("path", cfg.Seed.Path),
				zap.Int("loaded", n),
				zap.Error(err),
			)
		}
	}

	// Use case services
	markerSvc := markeruc.New(repo, embedder).
		WithPagination(cfg.Index.DefaultPageSize, cfg.Index.MaxPageSize)
	describeSvc := describeuc.New(repo, embedder)

	worldGlobe := scene.Globe{Radius: cfg.Globe.WorldRadius}
	pickSvc := pickeruc.New(worldGlobe, func(res pickeruc.Result) {
		logger.Debug("surface selection",
			zap.Float64("lat", res.Coord.Lat),
			zap.Float64("lon", res.Coord.Lon),
		)
	})
	throttledPicker := pickeruc.NewThrottled(pickSvc, time.Duration(cfg.Picker.ThrottleMs)*time.Millisecond)

	// Pass nil interface (not typed nil pointer!) when embedding is off.
	// Go gotcha: a typed nil wrapped in EmbeddingChecker != nil.
	var embeddingChecker healthuc.EmbeddingChecker
	if embedder != nil {
		embeddingChecker = newEmbeddingHealthChecker(embedder)
	}
	healthSvc := healthuc.New(store, embeddingChecker)

	server := chiTransport.NewServer(markerSvc, describeSvc, throttledPicker, healthSvc, worldGlobe, logger).
		WithScene(cfg.Globe.SurfaceRadiusMeters, cfg.Globe.ScaleRange())

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

// buildEmbedder assembles the decorator chain: OpenAI -> Cached.
func buildEmbedder(cfg config.EmbeddingConfig, store db.Store, logger *zap.Logger) domain.Embedder {
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Model:      cfg.Model,
		Dimensions: cfg.Dimensions,
		Provider:   cfg.Provider,
		Logger:     logger,
	})

	ttl := time.Duration(cfg.CacheTTLSec) * time.Second
	return embcache.New(base, store, ttl, metrics.EmbeddingCacheTotal, logger)
}

// embeddingHealthChecker adapts domain.Embedder to health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
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
