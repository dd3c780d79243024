package main

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/fastygo/taskmaster/internal/config"
	mongoInfra "github.com/fastygo/taskmaster/internal/infrastructure/mongo"
	"github.com/fastygo/taskmaster/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/taskmaster/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/taskmaster/internal/infrastructure/redis"
	"github.com/fastygo/taskmaster/internal/services/lifecycle"
	"github.com/fastygo/taskmaster/repository"
	boltRepo "github.com/fastygo/taskmaster/repository/bolt"
	"github.com/fastygo/taskmaster/repository/memory"
	mongoRepo "github.com/fastygo/taskmaster/repository/mongo"
	pgRepo "github.com/fastygo/taskmaster/repository/postgres"
	redisRepo "github.com/fastygo/taskmaster/repository/redis"
)

// stores groups the document repositories of one backend.
type stores struct {
	users    repository.UserRepository
	tasks    repository.TaskRepository
	statuses repository.TaskStatusRepository
	checks   []monitor.Check
	// memory is set when the in-process backend is used, so sessions can share it.
	memory *memory.Store
}

// sessionStore is the configured session backend. purger is nil when the
// backend expires keys itself.
type sessionStore struct {
	repo   repository.SessionRepository
	purger repository.SessionPurger
	checks []monitor.Check
}

func openStores(ctx context.Context, cfg *config.Config, manager *lifecycle.Manager, logger *zap.Logger) (*stores, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		if cfg.Migrations.Enabled {
			if err := pgInfra.RunMigrations(cfg, pgInfra.Up, logger); err != nil {
				return nil, fmt.Errorf("migrations: %w", err)
			}
		}
		pool, err := pgInfra.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		manager.Register("postgres", func(context.Context) error {
			pgInfra.Close(pool, logger)
			return nil
		})
		return &stores{
			users:    pgRepo.NewUserRepository(pool),
			tasks:    pgRepo.NewTaskRepository(pool),
			statuses: pgRepo.NewTaskStatusRepository(pool),
			checks:   []monitor.Check{{Name: "postgres", Ping: pool.Ping}},
		}, nil

	case config.DriverMongo:
		client, db, err := mongoInfra.Connect(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, fmt.Errorf("mongodb: %w", err)
		}
		manager.Register("mongodb", func(ctx context.Context) error {
			return mongoInfra.Disconnect(ctx, client, logger)
		})
		if err := mongoRepo.EnsureIndexes(ctx, db); err != nil {
			return nil, fmt.Errorf("mongodb indexes: %w", err)
		}
		return &stores{
			users:    mongoRepo.NewUserRepository(db),
			tasks:    mongoRepo.NewTaskRepository(db),
			statuses: mongoRepo.NewTaskStatusRepository(db),
			checks: []monitor.Check{{Name: "mongodb", Ping: func(ctx context.Context) error {
				return client.Ping(ctx, readpref.Primary())
			}}},
		}, nil

	case config.DriverMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return &stores{
			users:    store.Users(),
			tasks:    store.Tasks(),
			statuses: store.TaskStatuses(),
			checks:   []monitor.Check{{Name: "memory", Ping: func(context.Context) error { return nil }}},
			memory:   store,
		}, nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
}

func openSessions(ctx context.Context, cfg *config.Config, docs *stores, manager *lifecycle.Manager, logger *zap.Logger) (*sessionStore, error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		client, err := redisInfra.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		manager.Register("redis", func(context.Context) error {
			return client.Close()
		})
		return &sessionStore{
			repo: redisRepo.NewSessionRepository(client, cfg.Session.TTL),
			checks: []monitor.Check{{Name: "redis", Ping: func(ctx context.Context) error {
				return client.Ping(ctx).Err()
			}}},
		}, nil

	case config.SessionStoreBolt:
		store, err := boltRepo.Open(cfg.Session.BoltPath, cfg.Session.TTL)
		if err != nil {
			return nil, fmt.Errorf("bolt: %w", err)
		}
		manager.Register("bolt", func(context.Context) error {
			return store.Close()
		})
		return &sessionStore{
			repo:   store,
			purger: store,
			checks: []monitor.Check{{Name: "bolt", Ping: store.Ping}},
		}, nil

	case config.SessionStoreMemory:
		store := docs.memory
		if store == nil {
			store = memory.NewStore()
		}
		sessions := store.Sessions()
		return &sessionStore{repo: sessions, purger: sessions}, nil
	}
	return nil, fmt.Errorf("unsupported session store %q", cfg.Session.Store)
}
