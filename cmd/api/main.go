package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	appconfig "rsstok/internal/config"
	pgRepo "rsstok/internal/infra/adapter/persistence/postgres"
	"rsstok/internal/infra/db"
	"rsstok/internal/infra/extract"
	"rsstok/internal/infra/fetcher"
	"rsstok/internal/infra/scraper"
	"rsstok/pkg/config"

	feedUC "rsstok/internal/usecase/feed"
	libUC "rsstok/internal/usecase/library"

	hhttp "rsstok/internal/handler/http"
	hfeed "rsstok/internal/handler/http/feed"
	hlibrary "rsstok/internal/handler/http/library"
	"rsstok/internal/handler/http/middleware"
	"rsstok/internal/handler/http/requestid"
	"rsstok/internal/observability/logging"
	"rsstok/internal/observability/tracing"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database := initDatabase(logger)
	if database != nil {
		defer func() {
			if err := database.Close(); err != nil {
				logger.Error("failed to close database", slog.Any("error", err))
			}
		}()
	}

	version := config.GetEnvString("VERSION", "dev")
	handler := setupServer(logger, database)

	runServer(logger, handler, version)
}

// initDatabase opens the connection pool and runs migrations when
// DATABASE_URL is configured. Without it the library endpoints degrade to
// empty collections and feed reading still works.
func initDatabase(logger *slog.Logger) *sql.DB {
	if os.Getenv("DATABASE_URL") == "" {
		logger.Warn("DATABASE_URL not set, library persistence disabled")
		return nil
	}

	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// setupServer wires the services, routes, and middleware chain.
func setupServer(logger *slog.Logger, database *sql.DB) http.Handler {
	scraperCfg := scraper.DefaultConfig()
	scraperCfg.Timeout = config.GetEnvDuration("FEED_FETCH_TIMEOUT", scraperCfg.Timeout)
	scraperCfg.UserAgent = config.GetEnvString("FEED_USER_AGENT", scraperCfg.UserAgent)

	rssFetcher := scraper.NewRSSFetcher(&http.Client{Timeout: scraperCfg.Timeout}, scraperCfg)
	extractor := extract.New()

	var contentFetcher feedUC.ContentFetcher
	contentCfg, err := fetcher.LoadContentFetchConfig()
	if err != nil {
		logger.Warn("invalid content fetch configuration, enhancement disabled",
			slog.Any("error", err))
	} else if contentCfg.Enabled {
		contentFetcher = fetcher.NewReadabilityFetcher(contentCfg)
		logger.Info("content enhancement enabled",
			slog.Duration("timeout", contentCfg.Timeout),
			slog.Int64("max_body_size", contentCfg.MaxBodySize))
	}

	feedCfg := feedUC.DefaultConfig()
	feedCfg.CacheTTL = config.GetEnvDuration("FEED_CACHE_TTL", feedCfg.CacheTTL)
	feedSvc := feedUC.NewService(rssFetcher, extractor, contentFetcher, feedCfg)

	var libSvc *libUC.Service
	if database != nil {
		libSvc = libUC.NewService(pgRepo.NewLibraryRepo(database), pgRepo.NewRecentFeedRepo(database))
	} else {
		libSvc = libUC.NewService(nil, nil)
	}

	presets := appconfig.LoadPresets()

	mux := http.NewServeMux()
	hfeed.Register(mux, feedSvc, presets)
	hlibrary.Register(mux, libSvc)

	mux.Handle("GET /health", &hhttp.HealthHandler{DB: database, Cache: feedSvc, Version: config.GetEnvString("VERSION", "dev")})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	return applyMiddleware(logger, mux)
}

// applyMiddleware builds the chain, innermost first: timeout, metrics,
// body limit, logging, recovery, rate limiting, tracing, request ID, CORS.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	corsCfg := middleware.LoadCORSConfig()
	logger.Info("cors enabled",
		slog.Any("allowed_origins", corsCfg.AllowedOrigins),
		slog.Any("allowed_methods", corsCfg.AllowedMethods))

	rateCfg := config.LoadRateLimitConfig()

	chain := handler
	chain = hhttp.Timeout(config.GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second))(chain)
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)

	if rateCfg.Enabled {
		limiter := hhttp.NewRateLimiter(rateCfg.Limit, rateCfg.Window)
		chain = limiter.Limit(chain)
		logger.Info("rate limiting enabled",
			slog.Int("limit", rateCfg.Limit),
			slog.Duration("window", rateCfg.Window))
	} else {
		logger.Warn("rate limiting is disabled")
	}

	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	chain = middleware.CORS(corsCfg)(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := ":" + config.GetEnvString("PORT", "8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
