package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/namematch-backend/internal/adapter/dataset"
	"github.com/heartmarshall/namematch-backend/internal/adapter/filewatcher"
	"github.com/heartmarshall/namematch-backend/internal/adapter/postgres"
	"github.com/heartmarshall/namematch-backend/internal/adapter/postgres/name"
	"github.com/heartmarshall/namematch-backend/internal/auth"
	"github.com/heartmarshall/namematch-backend/internal/config"
	"github.com/heartmarshall/namematch-backend/internal/domain"
	"github.com/heartmarshall/namematch-backend/internal/nameindex"
	"github.com/heartmarshall/namematch-backend/internal/service/indexing"
	"github.com/heartmarshall/namematch-backend/internal/service/matching"
	"github.com/heartmarshall/namematch-backend/internal/transport/middleware"
	"github.com/heartmarshall/namematch-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, builds the
// index, serves HTTP until ctx is cancelled and then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("build", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("index_source", cfg.Index.Source),
	)

	// --- Index source ---
	var (
		source     indexSource
		dbPing     pinger
		stored     datasetStore
		datasetSrc *dataset.Reader
	)
	if cfg.Index.UsesPostgres() {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
		repo := name.New(pool)
		source = repo
		stored = repo
		dbPing = pool
	} else {
		datasetSrc = dataset.NewReader(cfg.Index.DatasetPath)
		source = datasetSrc
	}

	// --- Services ---
	holder := nameindex.NewHolder()
	indexSvc := indexing.NewService(logger, source, holder, cfg.Index)
	matchSvc := matching.NewService(logger, holder, cfg.Matching)

	if _, err := indexSvc.Reload(ctx, indexing.ReasonStartup); err != nil {
		// Keep serving: /ready reports 503 until a reload succeeds.
		logger.Error("initial index build failed", slog.String("error", err.Error()))
	}

	// --- Dataset watcher ---
	if datasetSrc != nil && cfg.Index.Watch {
		w, err := filewatcher.New(logger, datasetSrc.Path(), cfg.Index.WatchDebounce)
		if err != nil {
			return err
		}
		defer w.Close()

		changes, err := w.Watch(ctx)
		if err != nil {
			return err
		}
		go indexSvc.Run(ctx, changes)
	}

	// --- HTTP ---
	deps := routerDeps{
		matching: rest.NewMatchingHandler(matchSvc, logger),
		health:   rest.NewHealthHandler(indexSvc, dbPing, Version),
		admin:    rest.NewAdminHandler(indexSvc, stored, logger),
	}
	if cfg.Admin.AdminEnabled() {
		deps.adminAuth = auth.NewJWTManager(cfg.Admin.JWTSecret, cfg.Admin.JWTIssuer, cfg.Admin.TokenTTL)
	}
	if cfg.RateLimit.Enabled {
		rl := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, cfg.RateLimit.CleanupInterval)
		defer rl.Stop()
		deps.rateLimiter = rl
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      newRouter(logger, cfg.CORS, deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return serve(ctx, logger, srv, cfg.Server.ShutdownTimeout)
}

// serve runs srv until ctx is done, then shuts it down within timeout.
func serve(ctx context.Context, logger *slog.Logger, srv *http.Server, timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

type indexSource interface {
	LoadEntries(ctx context.Context) ([]*domain.NameEntry, error)
}

type datasetStore interface {
	Count(ctx context.Context) (int, error)
	LatestImport(ctx context.Context) (*domain.DatasetImport, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}
