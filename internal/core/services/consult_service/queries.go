package consult_service

import (
	"context"

	"github.com/easyconsult/consult-service/internal/core/domain"
	"github.com/easyconsult/consult-service/internal/core/ports/out"
)

// FindAll returns every consult with patient and professional resolved. An
// empty result set is a not-found error, never an empty list.
func (s *ConsultService) FindAll(ctx context.Context) ([]*domain.Consult, error) {
	consults, err := s.repository.FindAllWithDetails(ctx)
	if err != nil {
		s.logger.Error("consult.find_all.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, domain.NewDatabaseError("Failed to fetch consults.", err)
	}

	if len(consults) == 0 {
		return nil, domain.NewNotFound("No consults found.")
	}

	s.logger.Debug("consult.find_all.succeeded", out.LogFields{
		"count": len(consults),
	})
	return consults, nil
}

// FindWithFilters answers from the filtered-results cache when the
// fingerprint is present, otherwise queries the repository and stores the
// result. The same no-silent-empty contract as FindAll applies.
func (s *ConsultService) FindWithFilters(ctx context.Context, filter domain.ConsultFilter) ([]*domain.Consult, error) {
	fingerprint := filter.Fingerprint()

	if cached, ok := s.cache.GetFilterResults(ctx, fingerprint); ok {
		s.logger.Debug("consult.find_filtered.cache_hit", out.LogFields{
			"fingerprint": fingerprint,
			"count":       len(cached),
		})
		return cached, nil
	}

	consults, err := s.repository.FindWithFilters(ctx, filter)
	if err != nil {
		s.logger.Error("consult.find_filtered.failed", out.LogFields{
			"fingerprint": fingerprint,
			"error":       err.Error(),
		})
		return nil, domain.NewDatabaseError("Failed to fetch consults.", err)
	}

	if len(consults) == 0 {
		return nil, domain.NewNotFound("No consults found for the given filter.")
	}

	s.cache.StoreFilterResults(ctx, fingerprint, consults)

	s.logger.Debug("consult.find_filtered.succeeded", out.LogFields{
		"fingerprint": fingerprint,
		"count":       len(consults),
	})
	return consults, nil
}
