package postgres

import (
	"time"

	"github.com/easyconsult/consult-service/internal/core/domain"
)

type PatientEntity struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"size:255;not null"`
	Email string `gorm:"size:255;not null;uniqueIndex"`
}

func (PatientEntity) TableName() string { return "patients" }

type ProfessionalEntity struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"size:255;not null"`
	Email string `gorm:"size:255;not null;uniqueIndex"`
}

func (ProfessionalEntity) TableName() string { return "professionals" }

type ConsultEntity struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	Reason         string `gorm:"size:500;not null"`
	PatientID      int64  `gorm:"not null;index"`
	Patient        PatientEntity
	ProfessionalID int64 `gorm:"not null;index"`
	Professional   ProfessionalEntity
	LocalDate      time.Time `gorm:"type:date;not null"`
	LocalTime      string    `gorm:"type:time;not null"`
	Status         string    `gorm:"size:32;not null"`
}

func (ConsultEntity) TableName() string { return "consults" }

func toConsultEntity(consult *domain.Consult) ConsultEntity {
	return ConsultEntity{
		ID:             int64(consult.ID()),
		Reason:         consult.Reason(),
		PatientID:      consult.Patient().ID(),
		ProfessionalID: consult.Professional().ID(),
		LocalDate:      consult.ScheduledDate(),
		LocalTime:      consult.ScheduledTime().Format("15:04:05"),
		Status:         string(consult.Status()),
	}
}

func toConsult(entity ConsultEntity) (*domain.Consult, error) {
	patient, err := domain.NewPatient(entity.Patient.ID, entity.Patient.Name, entity.Patient.Email)
	if err != nil {
		return nil, err
	}
	professional, err := domain.NewProfessional(entity.Professional.ID, entity.Professional.Name, entity.Professional.Email)
	if err != nil {
		return nil, err
	}

	clock, err := time.Parse("15:04:05", entity.LocalTime)
	if err != nil {
		clock, err = time.Parse("15:04:05.000000", entity.LocalTime)
		if err != nil {
			return nil, domain.NewDatabaseError("invalid time column value: "+entity.LocalTime, err)
		}
	}

	return domain.NewConsult(domain.ConsultParams{
		ID:           domain.ConsultID(entity.ID),
		Reason:       entity.Reason,
		Patient:      patient,
		Professional: professional,
		Date:         entity.LocalDate,
		Time:         clock,
		Status:       domain.ConsultStatus(entity.Status),
	})
}
