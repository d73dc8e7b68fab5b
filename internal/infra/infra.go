package infra

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/zharpizza/landing/internal/config"
)

// Backends holds the optional external stores. A nil field means the app
// falls back to its in-memory implementation.
type Backends struct {
	DB    *pgxpool.Pool
	Cache *redis.Client
}

// Open connects to every backend configured in cfg.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Backends, error) {
	b := &Backends{}
	if cfg.DatabaseURL != "" {
		db, err := NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		b.DB = db
	} else {
		logger.Info("DATABASE_URL not set, serving built-in menu")
	}

	if cfg.RedisURL != "" {
		cache, err := NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			b.Close(logger)
			return nil, err
		}
		b.Cache = cache
	} else {
		logger.Info("REDIS_URL not set, keeping sessions in memory")
	}
	return b, nil
}

// Close releases every open backend.
func (b *Backends) Close(logger *slog.Logger) {
	if b.DB != nil {
		b.DB.Close()
	}
	if b.Cache != nil {
		if err := b.Cache.Close(); err != nil {
			logger.Warn("close redis", "error", err)
		}
	}
}
