package out

import (
	"context"

	"github.com/easyconsult/consult-service/internal/core/domain"
)

type ConsultRepositoryPort interface {
	// FindByID returns (nil, nil) when no consult exists for the id.
	FindByID(ctx context.Context, id domain.ConsultID) (*domain.Consult, error)

	// Save inserts or updates. The returned consult carries the id assigned
	// by storage on first insert.
	Save(ctx context.Context, consult *domain.Consult) (*domain.Consult, error)

	DeleteByID(ctx context.Context, id domain.ConsultID) error

	FindAllByPatientEmail(ctx context.Context, email string) ([]*domain.Consult, error)

	// FindAllWithDetails resolves patient and professional references eagerly.
	FindAllWithDetails(ctx context.Context) ([]*domain.Consult, error)

	FindWithFilters(ctx context.Context, filter domain.ConsultFilter) ([]*domain.Consult, error)
}
