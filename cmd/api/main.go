package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"freader/internal/auth"
	"freader/internal/catalog"
	"freader/internal/httpx"
	"freader/internal/library"
	"freader/internal/platform/config"
	"freader/internal/platform/googlebooks"
	"freader/internal/platform/logger"
	"freader/internal/platform/metrics"
	"freader/internal/platform/postgres"
	"freader/internal/stats"
	"freader/internal/user"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer pool.Close()
	log.Info("database connection OK", zap.String("dsn", config.RedactDSN(cfg.DatabaseDSN)))

	m := metrics.New()

	opts := []googlebooks.Option{googlebooks.WithObserver(m.ObserveCatalog)}
	if cfg.GoogleBooksAPIKey != "" {
		opts = append(opts, googlebooks.WithAPIKey(cfg.GoogleBooksAPIKey))
	}
	books := googlebooks.NewClient(cfg.GoogleBooksBaseURL, cfg.CatalogRPS, cfg.CatalogMaxRetries, opts...)

	userService := user.NewService(user.NewPostgresRepo(pool, cfg.DBTimeout), user.DefaultProfile)
	catalogService := catalog.NewService(books)
	libraryService := library.NewService(library.NewPostgresRepo(pool, cfg.DBTimeout), catalogService)
	statsService := stats.NewService(userService, libraryService)
	authService := auth.NewService(
		auth.NewAccountPostgresRepo(pool, cfg.DBTimeout),
		auth.NewBlacklistPostgresRepo(pool, cfg.DBTimeout),
		userService,
		cfg.JWTSecret,
		cfg.AccessTokenTTL,
		log,
	)

	h := handlers{
		auth:    auth.NewHTTPHandler(authService, log),
		users:   user.NewHTTPHandler(userService, log),
		catalog: catalog.NewHTTPHandler(catalogService, log),
		library: library.NewHTTPHandler(libraryService, log),
		stats:   stats.NewHTTPHandler(statsService, log),
	}
	mux := newRouter(h, httpx.AuthMiddleware(cfg.JWTSecret, authService), m, pool.Ping)

	limiter := httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)
	handler := httpx.Chain(mux,
		httpx.RecoveryMiddleware(log),
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(log),
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.CORSAllowedOrigins),
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
		limiter.Middleware,
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return authService.RunJanitor(gctx, cfg.BlacklistSweep)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
