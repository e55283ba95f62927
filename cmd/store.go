package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/twofactor-server/internal/config"
	"github.com/dtroode/twofactor-server/internal/logger"
	"github.com/dtroode/twofactor-server/internal/model"
	"github.com/dtroode/twofactor-server/internal/repository/memory"
	"github.com/dtroode/twofactor-server/internal/repository/mongo"
	"github.com/dtroode/twofactor-server/internal/repository/postgres"
	"github.com/dtroode/twofactor-server/internal/repository/redis"
	storage "github.com/dtroode/twofactor-server/internal/storage/minio"
)

// accountStore is the store surface main needs: the service contract plus
// provisioning for seed accounts.
type accountStore interface {
	model.AccountStore
	Create(ctx context.Context, id string, activated bool) error
}

// openStore connects the driver selected by cfg.Store.Driver. The returned
// close function releases the underlying connection.
func openStore(ctx context.Context, cfg *config.Config) (accountStore, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		db, err := postgres.NewConection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		return postgres.NewAccountRepository(db), func() { _ = db.Close() }, nil

	case config.DriverMongo:
		client, err := mongo.Connect(ctx, mongo.Config{
			URL:            cfg.Mongo.URL,
			Database:       cfg.Mongo.Database,
			Collection:     cfg.Mongo.Collection,
			ConnectTimeout: cfg.Mongo.ConnectTimeout,
			RetryAttempts:  cfg.Mongo.RetryAttempts,
			RetryInterval:  cfg.Mongo.RetryInterval,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open mongo: %w", err)
		}
		repo := mongo.NewAccountRepository(client.Database(cfg.Mongo.Database), cfg.Mongo.Collection)
		return repo, func() { _ = client.Disconnect(context.Background()) }, nil

	case config.DriverRedis:
		client, err := redis.Connect(ctx, redis.Config{
			URL:            cfg.Redis.URL,
			KeyPrefix:      cfg.Redis.KeyPrefix,
			RetryAttempts:  cfg.Redis.RetryAttempts,
			RetryInterval:  cfg.Redis.RetryInterval,
			ConnectTimeout: cfg.Redis.ConnectTimeout,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open redis: %w", err)
		}
		return redis.NewAccountRepository(client, cfg.Redis.KeyPrefix), func() { _ = client.Close() }, nil

	case config.DriverMinio:
		store, err := storage.Connect(ctx, storage.Options{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open object storage: %w", err)
		}
		return store, func() {}, nil

	case config.DriverMemory:
		return memory.NewStore(), func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// seedAccounts creates every id as an activated account, leaving existing ones untouched.
func seedAccounts(ctx context.Context, store accountStore, ids []string, logger *logger.Logger) error {
	for _, id := range ids {
		err := store.Create(ctx, id, true)
		switch {
		case err == nil:
			logger.Info("seeded account", "account_id", id)
		case errors.Is(err, model.ErrAlreadyExists):
			logger.Debug("seed account already exists", "account_id", id)
		default:
			return fmt.Errorf("failed to seed account %s: %w", id, err)
		}
	}
	return nil
}
