package consult_service

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/easyconsult/consult-service/internal/core/domain"
	"github.com/easyconsult/consult-service/internal/core/ports/out"
)

// The "allConsults" region holds one list under a fixed key.
const allConsultsCacheKey = "all-consults"

// CacheCoordinator keeps the three derived read paths (by-id, all-consults,
// filtered results) in line with repository mutations. Every operation is
// best-effort: a missing region or a bad entry is logged and skipped, never
// surfaced to the business operation that triggered it.
type CacheCoordinator struct {
	cache  out.CachePort
	logger out.LoggerPort
}

func NewCacheCoordinator(cache out.CachePort, logger out.LoggerPort) *CacheCoordinator {
	return &CacheCoordinator{
		cache:  cache,
		logger: logger.WithModule("CacheCoordinator"),
	}
}

func (cc *CacheCoordinator) OnConsultCreated(ctx context.Context, consult *domain.Consult) {
	cc.putByID(ctx, consult)
	cc.appendToAllConsults(ctx, consult)
	cc.clearFilterResults(ctx)
}

func (cc *CacheCoordinator) OnConsultUpdated(ctx context.Context, consult *domain.Consult) {
	cc.putByID(ctx, consult)
	cc.replaceInAllConsults(ctx, consult)
	cc.clearFilterResults(ctx)
}

func (cc *CacheCoordinator) OnConsultDeleted(ctx context.Context, consult *domain.Consult) {
	cc.evictByID(ctx, consult.ID())
	cc.removeFromAllConsults(ctx, consult.ID())
	cc.clearFilterResults(ctx)
}

// GetConsult serves the by-id read path.
func (cc *CacheCoordinator) GetConsult(ctx context.Context, id domain.ConsultID) (*domain.Consult, bool) {
	region := cc.region(out.CacheRegionConsults)
	if region == nil {
		return nil, false
	}

	raw, ok := region.Get(ctx, consultCacheKey(id))
	if !ok {
		return nil, false
	}

	var snapshot domain.ConsultSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		cc.logger.Warn("cache.consults.decode_failed", out.LogFields{
			"consultId": id,
			"error":     err.Error(),
		})
		return nil, false
	}

	consult, err := snapshot.Restore()
	if err != nil {
		cc.logger.Warn("cache.consults.restore_failed", out.LogFields{
			"consultId": id,
			"error":     err.Error(),
		})
		return nil, false
	}
	return consult, true
}

// GetFilterResults serves the filtered-query read path, keyed by the filter
// fingerprint.
func (cc *CacheCoordinator) GetFilterResults(ctx context.Context, fingerprint string) ([]*domain.Consult, bool) {
	region := cc.region(out.CacheRegionConsultsByFilter)
	if region == nil {
		return nil, false
	}

	raw, ok := region.Get(ctx, fingerprint)
	if !ok {
		return nil, false
	}

	consults, err := decodeConsultList(raw)
	if err != nil {
		cc.logger.Warn("cache.consults_by_filter.decode_failed", out.LogFields{
			"fingerprint": fingerprint,
			"error":       err.Error(),
		})
		return nil, false
	}
	return consults, true
}

func (cc *CacheCoordinator) StoreFilterResults(ctx context.Context, fingerprint string, consults []*domain.Consult) {
	region := cc.region(out.CacheRegionConsultsByFilter)
	if region == nil {
		return
	}

	raw, err := encodeConsultList(consults)
	if err != nil {
		cc.logger.Warn("cache.consults_by_filter.encode_failed", out.LogFields{
			"fingerprint": fingerprint,
			"error":       err.Error(),
		})
		return
	}
	region.Put(ctx, fingerprint, raw)
}

func (cc *CacheCoordinator) putByID(ctx context.Context, consult *domain.Consult) {
	region := cc.region(out.CacheRegionConsults)
	if region == nil {
		return
	}

	raw, err := json.Marshal(consult.Snapshot())
	if err != nil {
		cc.logger.Warn("cache.consults.encode_failed", out.LogFields{
			"consultId": consult.ID(),
			"error":     err.Error(),
		})
		return
	}
	region.Put(ctx, consultCacheKey(consult.ID()), raw)
}

func (cc *CacheCoordinator) evictByID(ctx context.Context, id domain.ConsultID) {
	region := cc.region(out.CacheRegionConsults)
	if region == nil {
		return
	}
	region.Evict(ctx, consultCacheKey(id))
}

// appendToAllConsults adds the consult to the cached list only if no element
// with the same id is present. An unset list is seeded with a singleton.
func (cc *CacheCoordinator) appendToAllConsults(ctx context.Context, consult *domain.Consult) {
	region := cc.region(out.CacheRegionAllConsults)
	if region == nil {
		return
	}

	snapshots, ok := cc.readAllConsults(ctx, region)
	if !ok {
		cc.writeAllConsults(ctx, region, []domain.ConsultSnapshot{consult.Snapshot()})
		cc.logger.Info("cache.all_consults.seeded", out.LogFields{
			"consultId": consult.ID(),
		})
		return
	}

	for _, existing := range snapshots {
		if existing.ID == int64(consult.ID()) {
			cc.logger.Debug("cache.all_consults.already_present", out.LogFields{
				"consultId": consult.ID(),
			})
			return
		}
	}

	cc.writeAllConsults(ctx, region, append(snapshots, consult.Snapshot()))
}

// replaceInAllConsults removes any element with the same id, then appends the
// updated value.
func (cc *CacheCoordinator) replaceInAllConsults(ctx context.Context, consult *domain.Consult) {
	region := cc.region(out.CacheRegionAllConsults)
	if region == nil {
		return
	}

	snapshots, ok := cc.readAllConsults(ctx, region)
	if !ok {
		cc.writeAllConsults(ctx, region, []domain.ConsultSnapshot{consult.Snapshot()})
		return
	}

	updated := snapshots[:0]
	for _, existing := range snapshots {
		if existing.ID != int64(consult.ID()) {
			updated = append(updated, existing)
		}
	}
	cc.writeAllConsults(ctx, region, append(updated, consult.Snapshot()))
}

// removeFromAllConsults filters the id out of the cached list. A miss is a
// no-op.
func (cc *CacheCoordinator) removeFromAllConsults(ctx context.Context, id domain.ConsultID) {
	region := cc.region(out.CacheRegionAllConsults)
	if region == nil {
		return
	}

	snapshots, ok := cc.readAllConsults(ctx, region)
	if !ok {
		return
	}

	updated := snapshots[:0]
	for _, existing := range snapshots {
		if existing.ID != int64(id) {
			updated = append(updated, existing)
		}
	}
	cc.writeAllConsults(ctx, region, updated)
}

// clearFilterResults drops the whole filtered-results region. Filter
// predicates are too numerous to patch selectively, so every mutation trades
// precision for correctness here.
func (cc *CacheCoordinator) clearFilterResults(ctx context.Context) {
	region := cc.region(out.CacheRegionConsultsByFilter)
	if region == nil {
		return
	}
	region.Clear(ctx)
	cc.logger.Debug("cache.consults_by_filter.cleared", nil)
}

func (cc *CacheCoordinator) readAllConsults(ctx context.Context, region out.CacheRegionPort) ([]domain.ConsultSnapshot, bool) {
	raw, ok := region.Get(ctx, allConsultsCacheKey)
	if !ok {
		return nil, false
	}

	var snapshots []domain.ConsultSnapshot
	if err := json.Unmarshal(raw, &snapshots); err != nil {
		// A corrupt entry is treated as unset so the caller reseeds it
		cc.logger.Warn("cache.all_consults.decode_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, false
	}
	return snapshots, true
}

func (cc *CacheCoordinator) writeAllConsults(ctx context.Context, region out.CacheRegionPort, snapshots []domain.ConsultSnapshot) {
	raw, err := json.Marshal(snapshots)
	if err != nil {
		cc.logger.Warn("cache.all_consults.encode_failed", out.LogFields{
			"error": err.Error(),
		})
		return
	}
	region.Put(ctx, allConsultsCacheKey, raw)
}

func (cc *CacheCoordinator) region(name string) out.CacheRegionPort {
	if cc.cache == nil {
		return nil
	}
	region := cc.cache.Region(name)
	if region == nil {
		cc.logger.Warn("cache.region.missing", out.LogFields{
			"region": name,
		})
	}
	return region
}

func consultCacheKey(id domain.ConsultID) string {
	return strconv.FormatInt(int64(id), 10)
}

func encodeConsultList(consults []*domain.Consult) ([]byte, error) {
	snapshots := make([]domain.ConsultSnapshot, 0, len(consults))
	for _, consult := range consults {
		snapshots = append(snapshots, consult.Snapshot())
	}
	return json.Marshal(snapshots)
}

func decodeConsultList(raw []byte) ([]*domain.Consult, error) {
	var snapshots []domain.ConsultSnapshot
	if err := json.Unmarshal(raw, &snapshots); err != nil {
		return nil, err
	}

	consults := make([]*domain.Consult, 0, len(snapshots))
	for _, snapshot := range snapshots {
		consult, err := snapshot.Restore()
		if err != nil {
			return nil, err
		}
		consults = append(consults, consult)
	}
	return consults, nil
}
