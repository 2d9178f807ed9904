package consult_service

import (
	"time"

	"github.com/easyconsult/consult-service/internal/config"
	"github.com/easyconsult/consult-service/internal/core/ports/out"
)

// ConsultService orchestrates the consult lifecycle: conflict checking,
// persistence, cache coordination and change-event publication. Within one
// operation the repository write always precedes cache mutation, which
// precedes event publication.
type ConsultService struct {
	repository out.ConsultRepositoryPort
	cache      *CacheCoordinator
	events     out.EventPublisherPort
	cfg        *config.Config
	logger     out.LoggerPort
	now        func() time.Time
}

func NewConsultService(
	repository out.ConsultRepositoryPort,
	cachePort out.CachePort,
	events out.EventPublisherPort,
	cfg *config.Config,
	logger out.LoggerPort,
) *ConsultService {
	return &ConsultService{
		repository: repository,
		cache:      NewCacheCoordinator(cachePort, logger),
		events:     events,
		cfg:        cfg,
		logger:     logger.WithModule("ConsultService"),
		now:        time.Now,
	}
}
