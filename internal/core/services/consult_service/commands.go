package consult_service

import (
	"context"
	"fmt"

	"github.com/easyconsult/consult-service/internal/core/domain"
	"github.com/easyconsult/consult-service/internal/core/ports/out"
)

func (s *ConsultService) CreateConsult(ctx context.Context, consult *domain.Consult) (*domain.Consult, error) {
	s.logger.Info("consult.create.started", out.LogFields{
		"patientEmail": consult.Patient().Email(),
		"date":         consult.ScheduledDate().Format("2006-01-02"),
		"time":         consult.ScheduledTime().Format("15:04:05"),
	})

	existing, err := s.repository.FindAllByPatientEmail(ctx, consult.Patient().Email())
	if err != nil {
		s.logger.Error("consult.create.conflict_read_failed", out.LogFields{
			"patientEmail": consult.Patient().Email(),
			"error":        err.Error(),
		})
		return nil, domain.NewDatabaseError("Failed to load existing consults for conflict check.", err)
	}

	if err := checkSchedulingConflict(consult, existing); err != nil {
		s.logger.Warn("consult.create.rejected", out.LogFields{
			"patientEmail": consult.Patient().Email(),
			"error":        err.Error(),
		})
		return nil, err
	}

	saved, err := s.repository.Save(ctx, consult)
	if err != nil {
		s.logger.Error("consult.create.persist_failed", out.LogFields{
			"patientEmail": consult.Patient().Email(),
			"error":        err.Error(),
		})
		return nil, domain.NewDatabaseError("Failed to persist consult.", err)
	}

	s.cache.OnConsultCreated(ctx, saved)
	s.publishConsultEvent(ctx, saved)

	s.logger.Info("consult.create.succeeded", out.LogFields{
		"consultId": saved.ID(),
	})
	return saved, nil
}

func (s *ConsultService) UpdateConsult(ctx context.Context, update domain.UpdateConsult) (*domain.Consult, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	s.logger.Info("consult.update.started", out.LogFields{
		"consultId": update.ID,
	})

	existing, err := s.repository.FindByID(ctx, update.ID)
	if err != nil {
		s.logger.Error("consult.update.load_failed", out.LogFields{
			"consultId": update.ID,
			"error":     err.Error(),
		})
		return nil, domain.NewDatabaseError("Failed to load consult.", err)
	}
	if existing == nil {
		return nil, domain.NewNotFound(fmt.Sprintf("Consult not found with ID: %d", update.ID))
	}

	if err := update.ApplyTo(existing, s.now()); err != nil {
		s.logger.Warn("consult.update.rejected", out.LogFields{
			"consultId": update.ID,
			"error":     err.Error(),
		})
		return nil, err
	}

	saved, err := s.repository.Save(ctx, existing)
	if err != nil {
		s.logger.Error("consult.update.persist_failed", out.LogFields{
			"consultId": update.ID,
			"error":     err.Error(),
		})
		return nil, domain.NewDatabaseError("Failed to update consult.", err)
	}

	s.cache.OnConsultUpdated(ctx, saved)
	s.publishConsultEvent(ctx, saved)

	s.logger.Info("consult.update.succeeded", out.LogFields{
		"consultId": saved.ID(),
	})
	return saved, nil
}

// DeleteConsult removes the consult from storage and evicts it from every
// cache region. No change event is published for deletion; only create and
// update carry events.
func (s *ConsultService) DeleteConsult(ctx context.Context, id domain.ConsultID) error {
	s.logger.Info("consult.delete.started", out.LogFields{
		"consultId": id,
	})

	existing, err := s.repository.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("consult.delete.load_failed", out.LogFields{
			"consultId": id,
			"error":     err.Error(),
		})
		return domain.NewDatabaseError("Failed to load consult.", err)
	}
	if existing == nil {
		return domain.NewNotFound(fmt.Sprintf("Consult not found with ID: %d", id))
	}

	if err := s.repository.DeleteByID(ctx, id); err != nil {
		s.logger.Error("consult.delete.persist_failed", out.LogFields{
			"consultId": id,
			"error":     err.Error(),
		})
		return domain.NewDatabaseError("Failed to delete consult.", err)
	}

	s.cache.OnConsultDeleted(ctx, existing)

	s.logger.Info("consult.delete.succeeded", out.LogFields{
		"consultId": id,
	})
	return nil
}
