package di

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/liverty-music/archive-core/internal/entity"
	"github.com/liverty-music/archive-core/internal/infrastructure/database/rdb"
	"github.com/liverty-music/archive-core/internal/infrastructure/tables"
	"github.com/liverty-music/archive-core/internal/infrastructure/upstream"
	"github.com/liverty-music/archive-core/internal/scoring"
	"github.com/liverty-music/archive-core/internal/usecase"
	"github.com/liverty-music/archive-core/pkg/cache"
	"github.com/liverty-music/archive-core/pkg/config"
	"github.com/liverty-music/archive-core/pkg/shutdown"
	"github.com/pannpers/go-logging/logging"
)

// configPrefix namespaces every environment variable this service reads,
// e.g. APP_UPSTREAM_BASE_URL.
const configPrefix = "APP"

// archiveCacheSize bounds the in-memory player-archive read cache to
// roughly 1000 players, matching the orchestrator's working set.
const archiveCacheSize = 1000

// Usecases bundles every use case InitializeApp wires up, for callers
// (cmd/api, and any future transport adapter) that need direct access to
// them rather than going through App's health-only HTTP surface.
type Usecases struct {
	Archive  usecase.ArchiveUseCase
	Identity usecase.IdentityUseCase
	Song     usecase.SongUseCase
}

// InitializeApp creates a new App with all dependencies wired up manually.
func InitializeApp(ctx context.Context) (*App, *Usecases, error) {
	cfg, err := config.Load(configPrefix)
	if err != nil {
		return nil, nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger, err := provideLogger(cfg)
	if err != nil {
		return nil, nil, err
	}

	if err := rdb.RunMigrations(ctx, cfg, logger); err != nil {
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	db, err := rdb.New(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	chartTable, err := tables.Load(ctx, logger)
	if err != nil {
		return nil, nil, err
	}

	shutdown.Init(logger)

	pushAccEngine := scoring.NewPushAccEngine(cfg.Scoring.PushAccCacheSize)

	archiveRepo := rdb.NewArchiveRepository(db, chartTable, pushAccEngine, cfg.Scoring.HistoryMaxRecords, cfg.Scoring.StorePushAcc)
	identityRepo := rdb.NewIdentityRepository(db)

	upstreamClient := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.AppID, cfg.Upstream.AppKey, cfg.Upstream.Timeout, nil)

	archiveCache := cache.NewMemoryCache[string, *entity.PlayerArchive](archiveCacheSize, cfg.Scoring.CacheTTL)

	archiveUC := usecase.NewArchiveUseCase(archiveRepo, identityRepo, upstreamClient, chartTable, archiveCache, logger)
	identityUC := usecase.NewIdentityUseCase(identityRepo, upstreamClient, logger)
	songUC := usecase.NewSongUseCase(chartTable, logger)

	healthMux := http.NewServeMux()
	healthMux.HandleFunc("/healthz", healthCheckHandler(db, logger))
	healthSrv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           healthMux,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Register shutdown phases.
	// Drain: the archive read cache stops first, then the upstream
	// client's throttler goroutine is closed, then the database is
	// closed last since earlier phases may still reference it.
	shutdown.AddDrainPhase(archiveCache)
	shutdown.AddExternalPhase(upstreamClient)
	shutdown.AddDatastorePhase(db)

	app := newApp(healthSrv, logger, cfg.ShutdownTimeout)
	usecases := &Usecases{Archive: archiveUC, Identity: identityUC, Song: songUC}

	return app, usecases, nil
}

// healthCheckHandler reports 200 when the database is reachable, 503
// otherwise. The full gRPC-health-v1/grpchealth surface the teacher
// exposes over Connect is out of scope: this service has no RPC router.
func healthCheckHandler(db *rdb.Database, logger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			logger.Error(r.Context(), "health check failed", slog.Any("error", err))
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func provideLogger(cfg *config.Config) (*logging.Logger, error) {
	var opts []logging.Option
	switch cfg.Logging.Level {
	case "debug":
		opts = append(opts, logging.WithLevel(slog.LevelDebug))
	case "info":
		opts = append(opts, logging.WithLevel(slog.LevelInfo))
	case "warn":
		opts = append(opts, logging.WithLevel(slog.LevelWarn))
	case "error":
		opts = append(opts, logging.WithLevel(slog.LevelError))
	}
	switch cfg.Logging.Format {
	case "text":
		opts = append(opts, logging.WithFormat(logging.FormatText))
	case "json":
		opts = append(opts, logging.WithFormat(logging.FormatJSON))
	}
	return logging.New(opts...)
}
