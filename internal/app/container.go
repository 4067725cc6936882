// Package app assembles the application: configuration in, wired
// handlers out.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/followthru/followthru/internal/habits/application/commands"
	"github.com/followthru/followthru/internal/habits/application/queries"
	"github.com/followthru/followthru/internal/habits/domain"
	habitPersistence "github.com/followthru/followthru/internal/habits/infrastructure/persistence"
	"github.com/followthru/followthru/internal/habits/infrastructure/statscache"
	identityApp "github.com/followthru/followthru/internal/identity/application"
	"github.com/followthru/followthru/internal/identity/infrastructure/authapi"
	"github.com/followthru/followthru/internal/identity/infrastructure/tokenstore"
	sharedApplication "github.com/followthru/followthru/internal/shared/application"
	"github.com/followthru/followthru/internal/shared/infrastructure/database"
	"github.com/followthru/followthru/internal/shared/infrastructure/eventbus"
	sharedPersistence "github.com/followthru/followthru/internal/shared/infrastructure/persistence"
	"github.com/followthru/followthru/internal/shared/infrastructure/migrations"
	"github.com/followthru/followthru/pkg/config"
)

// Container holds the wired application.
type Container struct {
	CreateHabitHandler      *commands.CreateHabitHandler
	UpdateHabitHandler      *commands.UpdateHabitHandler
	DeleteHabitHandler      *commands.DeleteHabitHandler
	RecordCompletionHandler *commands.RecordCompletionHandler

	ListHabitsHandler    *queries.ListHabitsHandler
	GetHabitHandler      *queries.GetHabitHandler
	MonthStatusHandler   *queries.MonthStatusHandler
	MonthlyStatsHandler  *queries.MonthlyStatsHandler
	OverviewStatsHandler *queries.OverviewStatsHandler

	Session *identityApp.SessionService

	logger     *slog.Logger
	sqliteDB   *sql.DB
	pgPool     *pgxpool.Pool
	publisher  eventbus.Publisher
	statsCache *statscache.RedisStatsCache
}

// NewContainer wires the application from configuration. The returned
// container must be closed.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Container{logger: logger}

	habitRepo, uow, err := c.openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	bus := eventbus.NewInProcessBus(logger)
	c.publisher = bus
	if cfg.RabbitMQURL != "" {
		broker, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
		if err != nil {
			c.closePartial()
			return nil, err
		}
		c.publisher = eventbus.NewFanoutPublisher(bus, broker)
	}

	var statsCache queries.StatsCache
	if cfg.RedisURL != "" {
		cache, err := statscache.NewRedisStatsCache(cfg.RedisURL, cfg.StatsCacheTTL, logger)
		if err != nil {
			c.closePartial()
			return nil, err
		}
		statscache.RegisterInvalidation(bus, cache, logger)
		c.statsCache = cache
		statsCache = cache
	}

	c.CreateHabitHandler = commands.NewCreateHabitHandler(habitRepo, uow, c.publisher, logger)
	c.UpdateHabitHandler = commands.NewUpdateHabitHandler(habitRepo, uow, c.publisher, logger)
	c.DeleteHabitHandler = commands.NewDeleteHabitHandler(habitRepo, uow, c.publisher, logger)
	c.RecordCompletionHandler = commands.NewRecordCompletionHandler(habitRepo, uow, c.publisher, logger)

	c.ListHabitsHandler = queries.NewListHabitsHandler(habitRepo)
	c.GetHabitHandler = queries.NewGetHabitHandler(habitRepo)
	c.MonthStatusHandler = queries.NewMonthStatusHandler(habitRepo)
	c.MonthlyStatsHandler = queries.NewMonthlyStatsHandler(habitRepo, statsCache, logger)
	c.OverviewStatsHandler = queries.NewOverviewStatsHandler(habitRepo)

	api := authapi.NewClient(cfg.APIBaseURL, logger)
	tokens := tokenstore.NewFileStore(cfg.TokenPath)
	c.Session = identityApp.NewSessionService(api, tokens, logger)

	return c, nil
}

// openStore opens the configured database, runs migrations, and returns
// the habit repository with its unit of work.
func (c *Container) openStore(ctx context.Context, cfg *config.Config) (domain.Repository, sharedApplication.UnitOfWork, error) {
	if cfg.DatabaseURL != "" && database.DetectDriver(cfg.DatabaseURL) == database.DriverPostgres {
		pool, err := database.OpenPostgres(ctx, database.Config{URL: cfg.DatabaseURL})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open PostgreSQL: %w", err)
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to migrate PostgreSQL: %w", err)
		}
		c.pgPool = pool
		c.logger.Debug("store opened", "driver", database.DriverPostgres)
		return habitPersistence.NewPostgresHabitRepository(pool), sharedPersistence.NewPostgresUnitOfWork(pool), nil
	}

	path := cfg.SQLitePath
	if path == "" {
		path = database.DefaultSQLitePath()
	}
	db, err := database.OpenSQLite(ctx, database.Config{SQLitePath: path})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open SQLite: %w", err)
	}
	if err := migrations.RunSQLiteMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to migrate SQLite: %w", err)
	}
	c.sqliteDB = db
	c.logger.Debug("store opened", "driver", database.DriverSQLite, "path", path)
	return habitPersistence.NewSQLiteHabitRepository(db), sharedPersistence.NewSQLiteUnitOfWork(db), nil
}

// closePartial releases what has been opened so far when wiring fails.
func (c *Container) closePartial() {
	_ = c.Close()
}

// Close releases the container's resources.
func (c *Container) Close() error {
	var firstErr error

	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.statsCache != nil {
		if err := c.statsCache.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.sqliteDB != nil {
		if err := c.sqliteDB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.pgPool != nil {
		c.pgPool.Close()
	}

	return firstErr
}
