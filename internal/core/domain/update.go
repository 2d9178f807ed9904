package domain

import (
	"fmt"
	"time"
)

// UpdateConsult is a partial change-set: every field except ID is optional,
// and only the fields present overwrite the stored consult.
type UpdateConsult struct {
	ID     ConsultID
	Reason *string
	Date   *time.Time
	Time   *time.Time
	Status *ConsultStatus
}

func (u UpdateConsult) Validate() error {
	if u.ID.IsZero() {
		return NewConstraintViolation("update consult id cannot be empty")
	}
	if u.Status != nil {
		if _, err := ParseConsultStatus(string(*u.Status)); err != nil {
			return err
		}
	}
	return nil
}

// ApplyTo patches the consult in place. A status present in the change-set is
// routed through the aggregate's transition methods, so an illegal jump fails
// the same way a direct call would.
func (u UpdateConsult) ApplyTo(consult *Consult, now time.Time) error {
	if u.Reason != nil {
		if err := consult.setReason(*u.Reason); err != nil {
			return err
		}
	}
	if u.Date != nil {
		if u.Date.IsZero() {
			return NewConstraintViolation("consult date cannot be empty")
		}
		consult.scheduledDate = *u.Date
	}
	if u.Time != nil {
		if u.Time.IsZero() {
			return NewConstraintViolation("consult time cannot be empty")
		}
		consult.scheduledTime = *u.Time
	}
	if u.Status != nil && *u.Status != consult.status {
		switch *u.Status {
		case ConsultStatusCancelled:
			return consult.Cancel(now)
		case ConsultStatusCompleted:
			return consult.Complete()
		case ConsultStatusNoShow:
			return consult.MarkNoShow()
		default:
			return NewBusinessRule(fmt.Sprintf("cannot transition a consult from %s back to %s", consult.status, *u.Status))
		}
	}
	return nil
}
