package out

import "context"

// Cache region names, mirroring the derived read paths they back.
const (
	CacheRegionConsults         = "consults"
	CacheRegionAllConsults      = "allConsults"
	CacheRegionConsultsByFilter = "consultsByFilter"
)

// CachePort hands out named regions. A region that is not provisioned comes
// back nil; callers must tolerate that and carry on without it.
type CachePort interface {
	Region(name string) CacheRegionPort
}

// CacheRegionPort is a key-value view over one region. Values are opaque
// serialized bytes; the coordinator owns the encoding.
type CacheRegionPort interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Put(ctx context.Context, key string, value []byte)
	Evict(ctx context.Context, key string)
	Clear(ctx context.Context)
}
