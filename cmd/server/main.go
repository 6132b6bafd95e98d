package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	specpkg "github.com/redeinformatica/vitrine/api"
	"github.com/redeinformatica/vitrine/internal/api"
	"github.com/redeinformatica/vitrine/internal/api/middleware"
	"github.com/redeinformatica/vitrine/internal/auth"
	"github.com/redeinformatica/vitrine/internal/blob"
	"github.com/redeinformatica/vitrine/internal/catalog"
	"github.com/redeinformatica/vitrine/internal/config"
	"github.com/redeinformatica/vitrine/internal/item"
	"github.com/redeinformatica/vitrine/internal/postgres"
	"github.com/redeinformatica/vitrine/internal/sweeper"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	if err := run(cfg); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}

	storage, err := blob.NewMinioStore(ctx, blob.MinioConfig{
		Endpoint:    cfg.S3Endpoint,
		AccessKey:   cfg.S3AccessKey,
		SecretKey:   cfg.S3SecretKey,
		Bucket:      cfg.S3Bucket,
		UseSSL:      cfg.S3UseSSL,
		UploadTTL:   cfg.UploadURLTTL,
		DownloadTTL: cfg.DownloadURLTTL,
	})
	if err != nil {
		return fmt.Errorf("connecting to object storage: %w", err)
	}

	// Cached download URLs must expire well before the signed URL does.
	blobs, err := blob.NewCachedStore(storage, cfg.URLCacheSize, cfg.DownloadURLTTL/2)
	if err != nil {
		return fmt.Errorf("building url cache: %w", err)
	}

	revoker, closeRevoker := newRevoker(cfg)
	defer closeRevoker()

	sessions, err := auth.NewSessions(auth.SessionConfig{
		Secret: []byte(cfg.SessionSecret),
		TTL:    cfg.SessionTTL,
		Issuer: cfg.SessionIssuer,
	})
	if err != nil {
		return fmt.Errorf("configuring sessions: %w", err)
	}
	accounts := auth.NewService(auth.NewRepository(db.Pool()), sessions, revoker, cfg.BcryptCost)

	store := catalog.NewPostgresStore(db.Pool())
	svc := catalog.NewService(store, catalog.IdentityFunc(middleware.CurrentUserID), blobs)

	deps := api.RouterDeps{
		DBPinger:      db,
		StoragePinger: storage,
		Version:       cfg.Version,
		OpenAPISpec:   specpkg.OpenAPISpec,
		Authenticator: accounts,
		Accounts:      accounts,
		Catalog:       svc,
	}
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics, err := middleware.NewMetrics(reg)
		if err != nil {
			return fmt.Errorf("registering metrics: %w", err)
		}
		deps.Metrics = metrics
		deps.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	}

	router, err := api.NewRouter(deps)
	if err != nil {
		return err
	}

	sweepCtx, stopSweeper := context.WithCancel(ctx)
	defer stopSweeper()
	go sweeper.New(item.NewRepository(db.Pool()), cfg.SweepInterval).Start(sweepCtx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting vitrine server", "port", cfg.Port, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down server")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// newRevoker returns a Redis-backed revoker when REDIS_ADDR is set and an
// in-memory one otherwise.
func newRevoker(cfg *config.Config) (auth.Revoker, func()) {
	if cfg.RedisAddr == "" {
		slog.Warn("REDIS_ADDR not set; session revocation is local to this instance")
		return auth.NewMemoryRevoker(), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	return auth.NewRedisRevoker(client), func() {
		if err := client.Close(); err != nil {
			slog.Error("failed to close redis client", "error", err)
		}
	}
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
