package main

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/airhost/ops/internal/core/access"
	"github.com/airhost/ops/internal/core/domain"
	mongorepo "github.com/airhost/ops/internal/infrastructure/db/mongo"
	redisstore "github.com/airhost/ops/internal/infrastructure/db/redis"
	"github.com/airhost/ops/internal/pkg/config"
	"github.com/airhost/ops/pkg/logger"
)

// systemActor performs maintenance commands with admin rights.
var systemActor = access.Actor{UserID: "system", Role: domain.RoleAdmin}

type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	mongo *mongo.Client
	db    *mongo.Database
	redis *goredis.Client
}

// bootstrap loads configuration and connects to Mongo, and to Redis when withRedis.
func bootstrap(ctx context.Context, withRedis bool) (*app, error) {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "airhost",
	})

	client, db, err := mongorepo.Connect(ctx, mongorepo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: log, mongo: client, db: db}

	if withRedis {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			URL:      cfg.Redis.URL,
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			a.close(ctx)
			return nil, err
		}
		a.redis = rdb
	}
	return a, nil
}

func (a *app) close(ctx context.Context) {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn().Err(err).Msg("redis close")
		}
	}
	if err := a.mongo.Disconnect(ctx); err != nil {
		a.log.Warn().Err(err).Msg("mongo disconnect")
	}
}

func (a *app) ensureIndexes(ctx context.Context) error {
	if err := mongorepo.NewRepositories(a.db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("indexes: %w", err)
	}
	return nil
}
