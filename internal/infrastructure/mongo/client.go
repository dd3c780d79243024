package mongo

import (
	"context"
	"time"

	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/fastygo/taskmaster/internal/config"
)

// Connect opens a MongoDB client, verifies it with a ping and returns the configured database.
func Connect(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*mongodriver.Client, *mongodriver.Database, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongodriver.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	logger.Info("connected to mongodb", zap.String("db", cfg.Database))
	return client, client.Database(cfg.Database), nil
}

// Disconnect closes the client and logs the result.
func Disconnect(ctx context.Context, client *mongodriver.Client, logger *zap.Logger) error {
	if client == nil {
		return nil
	}
	err := client.Disconnect(ctx)
	if logger != nil {
		logger.Info("mongodb client disconnected", zap.Error(err))
	}
	return err
}
