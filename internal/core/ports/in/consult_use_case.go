package in

import (
	"context"

	"github.com/easyconsult/consult-service/internal/core/domain"
)

type ConsultCommandUseCase interface {
	// Scheduling a new consult
	CreateConsult(ctx context.Context, consult *domain.Consult) (*domain.Consult, error)

	// Partial update: only the fields present in the change-set are applied
	UpdateConsult(ctx context.Context, update domain.UpdateConsult) (*domain.Consult, error)

	DeleteConsult(ctx context.Context, id domain.ConsultID) error
}

type ConsultQueryUseCase interface {
	// Both reads surface an empty result set as a not-found error, never as
	// an empty list
	FindAll(ctx context.Context) ([]*domain.Consult, error)
	FindWithFilters(ctx context.Context, filter domain.ConsultFilter) ([]*domain.Consult, error)
}
