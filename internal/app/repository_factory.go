package app

import (
	"context"
	"fmt"
	"log/slog"

	analyticsDomain "github.com/imsachin001/chronosync/internal/analytics/domain"
	analyticsPersistence "github.com/imsachin001/chronosync/internal/analytics/infrastructure/persistence"
	"github.com/imsachin001/chronosync/internal/shared/infrastructure/database"
	"github.com/imsachin001/chronosync/internal/shared/infrastructure/docstore"
	"github.com/imsachin001/chronosync/pkg/config"
)

// RepositoryFactory creates the analytics ledger repositories for the
// backend named by ANALYTICS_STORE.
type RepositoryFactory struct {
	cfg    *config.Config
	conn   database.Connection
	logger *slog.Logger

	// open lets tests replace the remote store dialers.
	open func(ctx context.Context, backend string) (docstore.Store, error)
}

// NewRepositoryFactory creates a new repository factory.
func NewRepositoryFactory(cfg *config.Config, conn database.Connection, logger *slog.Logger) *RepositoryFactory {
	f := &RepositoryFactory{cfg: cfg, conn: conn, logger: logger}
	f.open = f.dial
	return f
}

// AnalyticsRepositories returns the ledger repositories and, for document
// backends, the store they share so the caller can close it.
func (f *RepositoryFactory) AnalyticsRepositories(ctx context.Context) (analyticsDomain.Repositories, docstore.Store, error) {
	backend := f.cfg.AnalyticsStore
	if backend == "" || backend == docstore.BackendSQL {
		return analyticsPersistence.NewSQLRepositories(f.conn), nil, nil
	}

	store, err := f.open(ctx, backend)
	if err != nil {
		return analyticsDomain.Repositories{}, nil, err
	}
	guarded := docstore.NewBreakerStore(store, docstore.BreakerConfig{
		Name:             "analytics-" + backend,
		FailureThreshold: f.cfg.StoreBreakerFailures,
		Timeout:          f.cfg.StoreBreakerTimeout,
	}, f.logger)

	f.logger.Info("analytics store ready", "backend", backend)
	return analyticsPersistence.NewDocRepositories(guarded), guarded, nil
}

func (f *RepositoryFactory) dial(ctx context.Context, backend string) (docstore.Store, error) {
	switch backend {
	case docstore.BackendMongo:
		store, err := docstore.OpenMongo(ctx, f.cfg.MongoURL, f.cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("open mongo analytics store: %w", err)
		}
		return store, nil
	case docstore.BackendRedis:
		store, err := docstore.OpenRedis(ctx, f.cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("open redis analytics store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported analytics store: %s", backend)
	}
}
