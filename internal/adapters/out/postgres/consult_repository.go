package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/easyconsult/consult-service/internal/core/domain"
	"github.com/easyconsult/consult-service/internal/core/ports/out"
)

type ConsultRepository struct {
	db     *gorm.DB
	logger out.LoggerPort
}

func NewConsultRepository(db *gorm.DB, logger out.LoggerPort) *ConsultRepository {
	return &ConsultRepository{
		db:     db,
		logger: logger.WithModule("ConsultRepository"),
	}
}

func (r *ConsultRepository) FindByID(ctx context.Context, id domain.ConsultID) (*domain.Consult, error) {
	var entity ConsultEntity
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Professional").
		First(&entity, int64(id)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toConsult(entity)
}

// Save inserts or updates the consult together with its patient and
// professional references. Parties are matched by email so a returning
// patient reuses the stored row.
func (r *ConsultRepository) Save(ctx context.Context, consult *domain.Consult) (*domain.Consult, error) {
	var saved ConsultEntity

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		patient := PatientEntity{
			Name:  consult.Patient().Name(),
			Email: consult.Patient().Email(),
		}
		if err := tx.Where(PatientEntity{Email: patient.Email}).FirstOrCreate(&patient).Error; err != nil {
			return err
		}

		professional := ProfessionalEntity{
			Name:  consult.Professional().Name(),
			Email: consult.Professional().Email(),
		}
		if err := tx.Where(ProfessionalEntity{Email: professional.Email}).FirstOrCreate(&professional).Error; err != nil {
			return err
		}

		entity := toConsultEntity(consult)
		entity.PatientID = patient.ID
		entity.ProfessionalID = professional.ID

		if err := tx.Save(&entity).Error; err != nil {
			return err
		}

		return tx.Preload("Patient").Preload("Professional").First(&saved, entity.ID).Error
	})
	if err != nil {
		return nil, err
	}

	result, err := toConsult(saved)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("repository.consult.saved", out.LogFields{
		"consultId": result.ID(),
	})
	return result, nil
}

func (r *ConsultRepository) DeleteByID(ctx context.Context, id domain.ConsultID) error {
	return r.db.WithContext(ctx).Delete(&ConsultEntity{}, int64(id)).Error
}

func (r *ConsultRepository) FindAllByPatientEmail(ctx context.Context, email string) ([]*domain.Consult, error) {
	var entities []ConsultEntity
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Professional").
		Where("patient_id IN (?)",
			r.db.Model(&PatientEntity{}).Select("id").Where("email = ?", email)).
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toConsults(entities)
}

func (r *ConsultRepository) FindAllWithDetails(ctx context.Context) ([]*domain.Consult, error) {
	var entities []ConsultEntity
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Professional").
		Order("local_date, local_time").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toConsults(entities)
}

// FindWithFilters builds the query from the filter's present fields; every
// condition is ANDed.
func (r *ConsultRepository) FindWithFilters(ctx context.Context, filter domain.ConsultFilter) ([]*domain.Consult, error) {
	query := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Professional")

	if filter.PatientEmail != nil {
		query = query.Where("patient_id IN (?)",
			r.db.Model(&PatientEntity{}).Select("id").Where("email = ?", *filter.PatientEmail))
	}
	if filter.ProfessionalEmail != nil {
		query = query.Where("professional_id IN (?)",
			r.db.Model(&ProfessionalEntity{}).Select("id").Where("email = ?", *filter.ProfessionalEmail))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Date != nil {
		query = query.Where("local_date = ?", filter.Date.Format("2006-01-02"))
	}
	if filter.Time != nil {
		query = query.Where("local_time = ?", filter.Time.Format("15:04:05"))
	}

	var entities []ConsultEntity
	if err := query.Find(&entities).Error; err != nil {
		return nil, err
	}
	return toConsults(entities)
}

func toConsults(entities []ConsultEntity) ([]*domain.Consult, error) {
	consults := make([]*domain.Consult, 0, len(entities))
	for _, entity := range entities {
		consult, err := toConsult(entity)
		if err != nil {
			return nil, err
		}
		consults = append(consults, consult)
	}
	return consults, nil
}
