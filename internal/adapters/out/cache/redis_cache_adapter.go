package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/easyconsult/consult-service/internal/config"
	"github.com/easyconsult/consult-service/internal/core/ports/out"
)

// RedisCacheAdapter maps each region to a key namespace
// "<prefix>:<region>:<key>". Clear walks the region's namespace with SCAN, so
// it stays safe on a shared instance.
type RedisCacheAdapter struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger out.LoggerPort
}

func NewRedisCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*RedisCacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("cache.redis.connect_failed", out.LogFields{
			"addr":  cfg.Redis.Addr,
			"error": err.Error(),
		})
		return nil, err
	}

	logger.Info("cache.redis.connected", out.LogFields{
		"addr": cfg.Redis.Addr,
	})

	return &RedisCacheAdapter{
		client: client,
		prefix: cfg.Cache.KeyPrefix,
		ttl:    time.Duration(cfg.Cache.TTLMinutes) * time.Minute,
		logger: logger.WithModule("RedisCacheAdapter"),
	}, nil
}

func (a *RedisCacheAdapter) Region(name string) out.CacheRegionPort {
	return &redisRegion{
		client: a.client,
		prefix: a.prefix + ":" + name + ":",
		ttl:    a.ttl,
		name:   name,
		logger: a.logger,
	}
}

func (a *RedisCacheAdapter) Close() error {
	return a.client.Close()
}

type redisRegion struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	name   string
	logger out.LoggerPort
}

func (r *redisRegion) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("cache.redis.get_failed", out.LogFields{
				"region": r.name,
				"key":    key,
				"error":  err.Error(),
			})
		}
		return nil, false
	}
	return value, true
}

func (r *redisRegion) Put(ctx context.Context, key string, value []byte) {
	if err := r.client.Set(ctx, r.prefix+key, value, r.ttl).Err(); err != nil {
		r.logger.Warn("cache.redis.put_failed", out.LogFields{
			"region": r.name,
			"key":    key,
			"error":  err.Error(),
		})
	}
}

func (r *redisRegion) Evict(ctx context.Context, key string) {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		r.logger.Warn("cache.redis.evict_failed", out.LogFields{
			"region": r.name,
			"key":    key,
			"error":  err.Error(),
		})
	}
}

func (r *redisRegion) Clear(ctx context.Context) {
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			r.logger.Warn("cache.redis.clear_del_failed", out.LogFields{
				"region": r.name,
				"key":    iter.Val(),
				"error":  err.Error(),
			})
		}
	}
	if err := iter.Err(); err != nil {
		r.logger.Warn("cache.redis.clear_scan_failed", out.LogFields{
			"region": r.name,
			"error":  err.Error(),
		})
	}
}
