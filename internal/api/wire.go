package api

import (
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/airhost/ops/internal/api/handler"
	"github.com/airhost/ops/internal/core/access"
	"github.com/airhost/ops/internal/core/domain"
	"github.com/airhost/ops/internal/core/ports"
	"github.com/airhost/ops/internal/core/service"
	mongorepo "github.com/airhost/ops/internal/infrastructure/db/mongo"
	redisstore "github.com/airhost/ops/internal/infrastructure/db/redis"
	"github.com/airhost/ops/internal/pkg/config"
)

// NewDeps wires the Mongo repositories, the Redis denylist and store into services.
func NewDeps(cfg *config.Config, db *mongo.Database, rdb *redis.Client, store ports.BlobStore, log zerolog.Logger) Deps {
	repos := mongorepo.NewRepositories(db)
	denylist := redisstore.NewTokenDenylist(rdb)

	fallback := access.FallbackDeny
	if cfg.Policy.LenientFallback {
		fallback = access.FallbackService
	}

	d := Deps{
		Log:           log,
		JWTSecret:     cfg.JWTSecret,
		AuthRateLimit: cfg.AuthRateLimit,
		Resolver:      access.NewResolver(repos.Users, fallback),
		Revocations:   denylist,
		Readiness: map[string]handler.Pinger{
			"mongodb": handler.MongoPinger(db),
			"redis":   handler.RedisPinger(rdb),
		},

		Auth:          service.NewAuthService(repos.Users, denylist, cfg.JWTSecret, cfg.TokenTTL, log),
		Users:         service.NewUserService(repos.Users, fallback, log),
		Orders:        service.NewOrderService(repos.Orders, repos.Users, repos.Images, repos.Comments, repos.Messages, repos.Notifications, log),
		Images:        service.NewImageService(repos.Images, repos.Comments, repos.Orders, store, domain.ImageUploadRules, log),
		Comments:      service.NewCommentService(repos.Comments, repos.Images, repos.Orders, log),
		Messages:      service.NewMessageService(repos.Messages, repos.Orders, repos.Notifications, log),
		Notifications: service.NewNotificationService(repos.Notifications, repos.Users, log),
		Stats:         service.NewStatsService(repos.Orders, repos.Users),
	}
	if cfg.Storage.Driver == "" || cfg.Storage.Driver == "local" {
		d.StorageRoot = cfg.Storage.LocalRoot
	}
	return d
}
