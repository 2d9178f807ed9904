package cache

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/easyconsult/consult-service/internal/config"
	"github.com/easyconsult/consult-service/internal/core/ports/out"
)

// MemoryCacheAdapter backs every region with its own LRU. It exists for local
// runs and tests; production points at redis.
type MemoryCacheAdapter struct {
	regions map[string]*memoryRegion
	logger  out.LoggerPort
}

func NewMemoryCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*MemoryCacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	adapter := &MemoryCacheAdapter{
		regions: make(map[string]*memoryRegion),
		logger:  logger.WithModule("MemoryCacheAdapter"),
	}

	for _, name := range []string{out.CacheRegionConsults, out.CacheRegionAllConsults, out.CacheRegionConsultsByFilter} {
		store, err := lru.New[string, []byte](cfg.Cache.Size)
		if err != nil {
			logger.Error("cache.region.init_failed", out.LogFields{
				"region": name,
				"size":   cfg.Cache.Size,
				"error":  err.Error(),
			})
			return nil, err
		}
		adapter.regions[name] = &memoryRegion{
			name:   name,
			cache:  store,
			logger: adapter.logger,
		}
	}

	return adapter, nil
}

func (a *MemoryCacheAdapter) Region(name string) out.CacheRegionPort {
	region, ok := a.regions[name]
	if !ok {
		return nil
	}
	return region
}

type memoryRegion struct {
	name   string
	mu     sync.RWMutex
	cache  *lru.Cache[string, []byte]
	logger out.LoggerPort
}

func (r *memoryRegion) Get(ctx context.Context, key string) ([]byte, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, exists := r.cache.Get(key)
	if !exists {
		r.logger.Debug("cache.get.miss", out.LogFields{
			"region": r.name,
			"key":    key,
		})
		return nil, false
	}

	r.logger.Debug("cache.get.hit", out.LogFields{
		"region": r.name,
		"key":    key,
	})
	return value, true
}

func (r *memoryRegion) Put(ctx context.Context, key string, value []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Add(key, value)
}

func (r *memoryRegion) Evict(ctx context.Context, key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Remove(key)
}

func (r *memoryRegion) Clear(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Purge()
}
