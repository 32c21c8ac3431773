package app

import (
	"context"

	"github.com/Karthikraja2345/ksmatri/internal/config"
	"github.com/Karthikraja2345/ksmatri/internal/logger"
	"github.com/Karthikraja2345/ksmatri/internal/mongo"
	"github.com/Karthikraja2345/ksmatri/internal/redis"
)

type Infra struct {
	Mongo *mongo.Database
	Redis *redis.Client // nil when no redis is configured
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	db, err := mongo.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}

	logger.Info("mongodb ready", nil)

	infra := &Infra{Mongo: db}

	if cfg.RedisAddr != "" {
		redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		infra.Redis = redisClient
		logger.Info("redis ready", nil)
	}

	return infra, nil
}
