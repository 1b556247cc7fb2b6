// Package main is the entry point for the API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/petbnb/petbnb/internal/api"
	"github.com/petbnb/petbnb/internal/config"
	"github.com/petbnb/petbnb/internal/db"
	"github.com/petbnb/petbnb/internal/geocode"
	"github.com/petbnb/petbnb/internal/health"
	"github.com/petbnb/petbnb/internal/middleware"
	"github.com/petbnb/petbnb/internal/ranking"
	"github.com/petbnb/petbnb/internal/sitter"
	"github.com/petbnb/petbnb/internal/tracing"
)

const serviceName = "petbnb-api"

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	help := flag.Bool("help", false, "display help message")
	flag.Parse()

	if *help {
		fmt.Println("PetBnB API Server")
		fmt.Println()
		fmt.Println("Usage: api [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	cfg, errs := config.Load(*configPath)
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, "config error:", err)
		}
		os.Exit(1)
	}

	logger := middleware.NewLogger(cfg.Env)
	slog.SetDefault(logger)
	logger.Info("configuration loaded", "config", cfg.LogSummary())

	tracerProvider, err := tracing.NewProvider(tracing.Config{
		ServiceName:  serviceName,
		Enabled:      cfg.TracingEnabled,
		Environment:  cfg.Env,
		OTLPEndpoint: cfg.TracingOTLPEndpoint,
		SamplingRate: cfg.TracingSamplingRate,
		InsecureMode: cfg.TracingInsecure,
	})
	if err != nil {
		logger.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}

	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	// Redis is optional. When configured it backs the geocode cache and
	// shared rate limits; without it those fall back to in-process state.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("failed to parse redis URL", "error", err)
			os.Exit(1)
		}
		rdb = redis.NewClient(redisOpts)
		defer rdb.Close()
	}

	registry := prometheus.NewRegistry()
	httpMetrics := middleware.NewMetrics()
	if err := httpMetrics.Register(registry); err != nil {
		logger.Error("failed to register HTTP metrics", "error", err)
		os.Exit(1)
	}
	searchMetrics := sitter.NewMetrics()
	if err := searchMetrics.Register(registry); err != nil {
		logger.Error("failed to register search metrics", "error", err)
		os.Exit(1)
	}

	var geocoder geocode.Geocoder = geocode.NewMapboxClient(cfg.MapboxToken)
	if rdb != nil {
		geocoder = geocode.NewCachedGeocoder(geocoder, rdb, geocode.DefaultCacheTTL, logger)
	}

	weights, err := ranking.LoadCalibration(cfg.RankingCalibrationPath)
	if err != nil {
		logger.Warn("using default ranking weights", "error", err)
	}

	repo := sitter.NewPostgresRepository(conn, logger)
	searcher := sitter.NewSearcher(repo, geocoder, weights, searchMetrics, logger)
	searcher.SetBackfillConcurrency(cfg.BackfillConcurrency)

	searchHandlers := api.NewSearchHandlers(searcher, logger)
	geocodeHandlers := api.NewGeocodeHandlers(geocoder, logger)

	checkers := map[string]api.HealthChecker{
		"database": health.NewDBChecker(conn),
	}
	if rdb != nil {
		checkers["redis"] = health.NewRedisChecker(rdb)
	}
	healthHandlers := api.NewHealthHandlers(checkers)

	var limitStore middleware.RateLimitStore = middleware.NewInMemoryRateLimitStore()
	if rdb != nil {
		limitStore = middleware.NewRedisRateLimitStore(rdb, httpMetrics)
	}
	searchLimiter := middleware.RateLimiter(limitStore, middleware.DefaultSearchLimit(), middleware.IPKeyFunc(), httpMetrics)
	geocodeLimiter := middleware.RateLimiter(limitStore, middleware.DefaultGeocodeLimit(), middleware.IPKeyFunc(), httpMetrics)

	mux := http.NewServeMux()
	mux.Handle("GET /api/v1/sitters/search", searchLimiter(http.HandlerFunc(searchHandlers.Search)))
	mux.Handle("GET /api/geocode", geocodeLimiter(http.HandlerFunc(geocodeHandlers.Geocode)))
	mux.HandleFunc("GET /health", healthHandlers.Health)
	mux.HandleFunc("GET /ready", healthHandlers.Ready)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			api.WriteError(w, r, http.StatusNotFound, api.ErrCodeNotFound, "The requested resource was not found")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"service":"petbnb-api","version":"0.1.0"}`)); err != nil {
			slog.Error("failed to write response", "error", err)
		}
	})

	// Middleware chain: RequestID -> Tracing -> Logging -> HTTPMetrics
	handler := middleware.RequestID(
		middleware.Tracing(serviceName)(
			middleware.Logging(logger)(
				middleware.HTTPMetrics(httpMetrics)(mux))))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Port, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	if err := tracerProvider.Shutdown(ctx); err != nil {
		logger.Warn("failed to shut down tracer provider", "error", err)
	}

	logger.Info("server stopped")
}
