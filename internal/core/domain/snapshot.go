package domain

import "time"

// ConsultSnapshot is the serializable view of a consult, used for cache
// entries and change-event payloads. Restore round-trips back into the
// aggregate.
type ConsultSnapshot struct {
	ID           int64         `json:"id"`
	Reason       string        `json:"reason"`
	Patient      PartySnapshot `json:"patient"`
	Professional PartySnapshot `json:"professional"`
	Date         string        `json:"date"`
	Time         string        `json:"time"`
	Status       string        `json:"status"`
}

type PartySnapshot struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (c *Consult) Snapshot() ConsultSnapshot {
	return ConsultSnapshot{
		ID:     int64(c.id),
		Reason: c.reason,
		Patient: PartySnapshot{
			ID:    c.patient.ID(),
			Name:  c.patient.Name(),
			Email: c.patient.Email(),
		},
		Professional: PartySnapshot{
			ID:    c.professional.ID(),
			Name:  c.professional.Name(),
			Email: c.professional.Email(),
		},
		Date:   c.scheduledDate.Format("2006-01-02"),
		Time:   c.scheduledTime.Format("15:04:05"),
		Status: string(c.status),
	}
}

func (s ConsultSnapshot) Restore() (*Consult, error) {
	patient, err := NewPatient(s.Patient.ID, s.Patient.Name, s.Patient.Email)
	if err != nil {
		return nil, err
	}
	professional, err := NewProfessional(s.Professional.ID, s.Professional.Name, s.Professional.Email)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", s.Date)
	if err != nil {
		return nil, NewConstraintViolation("invalid consult date: " + s.Date)
	}
	clock, err := time.Parse("15:04:05", s.Time)
	if err != nil {
		return nil, NewConstraintViolation("invalid consult time: " + s.Time)
	}

	return NewConsult(ConsultParams{
		ID:           ConsultID(s.ID),
		Reason:       s.Reason,
		Patient:      patient,
		Professional: professional,
		Date:         date,
		Time:         clock,
		Status:       ConsultStatus(s.Status),
	})
}
