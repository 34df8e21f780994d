// Package app wires configuration, storage, the event bus and the
// application handlers into one container shared by every binary.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	analyticsApp "github.com/imsachin001/chronosync/internal/analytics/application"
	analyticsDomain "github.com/imsachin001/chronosync/internal/analytics/domain"
	sharedApplication "github.com/imsachin001/chronosync/internal/shared/application"
	"github.com/imsachin001/chronosync/internal/shared/infrastructure/database"
	_ "github.com/imsachin001/chronosync/internal/shared/infrastructure/database/postgres" // Register PostgreSQL driver
	_ "github.com/imsachin001/chronosync/internal/shared/infrastructure/database/sqlite"   // Register SQLite driver
	"github.com/imsachin001/chronosync/internal/shared/infrastructure/docstore"
	"github.com/imsachin001/chronosync/internal/shared/infrastructure/eventbus"
	"github.com/imsachin001/chronosync/internal/shared/infrastructure/migrations"
	"github.com/imsachin001/chronosync/internal/tasks/application/commands"
	"github.com/imsachin001/chronosync/internal/tasks/application/queries"
	taskPersistence "github.com/imsachin001/chronosync/internal/tasks/infrastructure/persistence"
	"github.com/imsachin001/chronosync/pkg/config"
)

// Container holds all application dependencies.
type Container struct {
	Config   *config.Config
	Logger   *slog.Logger
	Location *time.Location
	UserID   uuid.UUID

	// Database
	DBConn     database.Connection
	UnitOfWork sharedApplication.UnitOfWork

	// Repositories
	TaskRepo       *taskPersistence.SQLTaskRepository
	AnalyticsRepos analyticsDomain.Repositories
	AnalyticsStore docstore.Store // nil when ledgers live in SQL

	// Events
	EventPublisher eventbus.Publisher
	LocalBus       *eventbus.InProcessBus // nil when publishing to RabbitMQ

	// Analytics
	Analytics *analyticsApp.Engine

	// Task handlers
	CreateTaskHandler *commands.CreateTaskHandler
	ToggleTaskHandler *commands.ToggleTaskHandler
	DeleteTaskHandler *commands.DeleteTaskHandler
	ListTasksHandler  *queries.ListTasksHandler
}

// NewContainer opens the task database, applies migrations, selects the
// analytics store and event publisher, and builds the handlers.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config:   cfg,
		Logger:   logger,
		Location: loc,
		UserID:   cfg.DefaultUser(),
	}

	conn, err := database.Open(ctx, database.Config{
		Driver:     database.Driver(cfg.DatabaseDriver),
		URL:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	c.DBConn = conn
	logger.Info("database connected", "driver", conn.Driver())

	if err := migrations.Run(ctx, conn); err != nil {
		c.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	c.UnitOfWork = database.NewUnitOfWork(conn)
	c.TaskRepo = taskPersistence.NewSQLTaskRepository(conn)

	repos, store, err := NewRepositoryFactory(cfg, conn, logger).AnalyticsRepositories(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.AnalyticsRepos = repos
	c.AnalyticsStore = store

	if err := c.initPublisher(); err != nil {
		c.Close()
		return nil, err
	}

	c.Analytics = analyticsApp.NewEngine(repos, c.TaskRepo, logger,
		analyticsApp.WithLocation(loc),
		analyticsApp.WithPublisher(c.EventPublisher),
	)

	c.CreateTaskHandler = commands.NewCreateTaskHandler(c.TaskRepo, c.UnitOfWork, c.Analytics, c.EventPublisher, logger)
	c.ToggleTaskHandler = commands.NewToggleTaskHandler(c.TaskRepo, c.UnitOfWork, c.Analytics, c.EventPublisher, logger)
	c.DeleteTaskHandler = commands.NewDeleteTaskHandler(c.TaskRepo, c.UnitOfWork, c.Analytics, c.EventPublisher, logger)
	c.ListTasksHandler = queries.NewListTasksHandler(c.TaskRepo)

	return c, nil
}

// initPublisher connects to RabbitMQ when configured and otherwise
// dispatches events in process.
func (c *Container) initPublisher() error {
	if c.Config.RabbitMQURL != "" {
		pub, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Config.EventsExchange, c.Logger)
		if err != nil {
			return fmt.Errorf("connect to rabbitmq: %w", err)
		}
		c.EventPublisher = pub
		c.Logger.Info("publishing events to rabbitmq", "exchange", c.Config.EventsExchange)
		return nil
	}

	bus := eventbus.NewInProcessBus(c.Logger)
	bus.Subscribe(analyticsApp.NewBadgeNotifier(c.Logger, nil))
	c.LocalBus = bus
	c.EventPublisher = bus
	return nil
}

// Close releases the connections held by the container.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("close event publisher", "error", err)
		}
	}
	if c.AnalyticsStore != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.AnalyticsStore.Close(ctx); err != nil {
			c.Logger.Warn("close analytics store", "error", err)
		}
	}
	if c.DBConn != nil {
		if err := c.DBConn.Close(); err != nil {
			c.Logger.Warn("close database", "error", err)
		}
	}
}
