package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoConfig carries the connection settings injected from the application
// config. Zero pool sizes fall back to the defaults below.
type MongoConfig struct {
	URI      string
	Database string
	MaxPool  uint64
	MinPool  uint64
}

const (
	defaultMaxPool = 50
	defaultMinPool = 5

	connectTimeout         = 10 * time.Second
	serverSelectionTimeout = 5 * time.Second
)

// ConnectMongoDB establishes a verified connection and returns the database
// handle the repositories are built on.
func ConnectMongoDB(ctx context.Context, cfg MongoConfig) (*mongo.Database, error) {
	if cfg.MaxPool == 0 {
		cfg.MaxPool = defaultMaxPool
	}
	if cfg.MinPool == 0 {
		cfg.MinPool = defaultMinPool
	}

	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(serverSelectionTimeout).
		SetMaxPoolSize(cfg.MaxPool).
		SetMinPoolSize(cfg.MinPool)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(cfg.Database), nil
}
