package repository

import (
	"context"
	"errors"
	"log/slog"

	"book_catalog/internal/model"
	"book_catalog/utils"

	"github.com/redis/go-redis/v9"
)

// Redis stores the same JSON document as JSONFile under a single key.
type Redis struct {
	redis *redis.Client
	key   string
}

func NewRedisRepo(redisClient *redis.Client, key string) *Redis {
	return &Redis{redis: redisClient, key: key}
}

func (r *Redis) Load(ctx context.Context) (model.Catalog, error) {
	op := "Redis.Load"
	rqID := utils.GetRequestIDFromCtx(ctx)

	res, err := r.redis.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			slog.Warn("redis key not found", slog.String("op", op), slog.String("rqID", rqID), slog.String("key", r.key))
			return model.Catalog{}, ErrNoData
		}
		slog.Error("failed on redis.Get", slog.String("op", op), slog.String("rqID", rqID), slog.String("err", err.Error()), slog.String("key", r.key))
		return model.Catalog{}, err
	}

	catalog, err := DecodeCatalog(res)
	if err != nil {
		slog.Warn("catalog in redis can't be decoded", slog.String("op", op), slog.String("rqID", rqID), slog.String("err", err.Error()))
		return model.Catalog{}, err
	}

	return catalog, nil
}

func (r *Redis) Save(ctx context.Context, catalog model.Catalog) error {
	op := "Redis.Save"
	rqID := utils.GetRequestIDFromCtx(ctx)

	data, err := EncodeCatalog(catalog)
	if err != nil {
		slog.Error("failed to encode catalog", slog.String("op", op), slog.String("rqID", rqID), slog.String("err", err.Error()))
		return err
	}

	if err = r.redis.Set(ctx, r.key, data, 0).Err(); err != nil {
		slog.Error("failed on redis.Set", slog.String("op", op), slog.String("rqID", rqID), slog.String("err", err.Error()), slog.String("key", r.key))
		return err
	}

	return nil
}
