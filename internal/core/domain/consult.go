package domain

import (
	"fmt"
	"strings"
	"time"
)

// ConsultID is assigned by storage on first insert. Zero means "not yet
// persisted".
type ConsultID int64

func (id ConsultID) IsZero() bool {
	return id == 0
}

// Consult is the aggregate root. It is constructed through NewConsult and
// mutated only through the named transition methods, so an instance holding an
// illegal state cannot exist.
type Consult struct {
	id            ConsultID
	reason        string
	patient       Patient
	professional  Professional
	scheduledDate time.Time
	scheduledTime time.Time
	status        ConsultStatus
}

type ConsultParams struct {
	ID           ConsultID
	Reason       string
	Patient      Patient
	Professional Professional
	// Date carries the calendar day, Time the clock time. Only the respective
	// components are read; the rest is ignored.
	Date time.Time
	Time time.Time
	// Status is used when rehydrating a persisted consult. Leave empty for a
	// newly scheduled one.
	Status ConsultStatus
}

func NewConsult(p ConsultParams) (*Consult, error) {
	reason := strings.TrimSpace(p.Reason)
	if reason == "" {
		return nil, NewConstraintViolation("consult reason cannot be empty")
	}
	if p.Patient.IsZero() {
		return nil, NewConstraintViolation("consult patient cannot be empty")
	}
	if p.Professional.IsZero() {
		return nil, NewConstraintViolation("consult professional cannot be empty")
	}
	if p.Date.IsZero() {
		return nil, NewConstraintViolation("consult date cannot be empty")
	}
	if p.Time.IsZero() {
		return nil, NewConstraintViolation("consult time cannot be empty")
	}

	status := p.Status
	if status == "" {
		status = ConsultStatusScheduled
	} else if _, err := ParseConsultStatus(string(status)); err != nil {
		return nil, err
	}

	return &Consult{
		id:            p.ID,
		reason:        reason,
		patient:       p.Patient,
		professional:  p.Professional,
		scheduledDate: p.Date,
		scheduledTime: p.Time,
		status:        status,
	}, nil
}

func (c *Consult) ID() ConsultID {
	return c.id
}

// AssignID records the identity handed out by storage. It is set once.
func (c *Consult) AssignID(id ConsultID) {
	if c.id.IsZero() {
		c.id = id
	}
}

func (c *Consult) Reason() string {
	return c.reason
}

func (c *Consult) Patient() Patient {
	return c.patient
}

func (c *Consult) Professional() Professional {
	return c.professional
}

func (c *Consult) ScheduledDate() time.Time {
	return c.scheduledDate
}

func (c *Consult) ScheduledTime() time.Time {
	return c.scheduledTime
}

// ScheduledAt combines date and clock time into the consult's instant. Reading
// it is always legal, even for consults already in the past.
func (c *Consult) ScheduledAt() time.Time {
	d := c.scheduledDate
	t := c.scheduledTime
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.Local)
}

func (c *Consult) Status() ConsultStatus {
	return c.status
}

func (c *Consult) IsFinalized() bool {
	return c.status.IsFinalized()
}

// SameSchedule reports whether both consults occupy the same (date, time)
// pair. Comparison is exact, not interval overlap.
func (c *Consult) SameSchedule(other *Consult) bool {
	return sameDate(c.scheduledDate, other.scheduledDate) && sameClock(c.scheduledTime, other.scheduledTime)
}

// Cancel is legal only for a scheduled consult whose instant is still in the
// future relative to now.
func (c *Consult) Cancel(now time.Time) error {
	if !c.status.CanBeCancelled() {
		return NewBusinessRule(fmt.Sprintf("cannot cancel a consult with status %s", c.status))
	}
	if c.ScheduledAt().Before(now) {
		return NewBusinessRule("cannot cancel a past consult")
	}
	c.status = ConsultStatusCancelled
	return nil
}

func (c *Consult) Complete() error {
	if c.status != ConsultStatusScheduled {
		return NewBusinessRule("only scheduled consults can be completed")
	}
	c.status = ConsultStatusCompleted
	return nil
}

func (c *Consult) MarkNoShow() error {
	if c.status != ConsultStatusScheduled {
		return NewBusinessRule("only scheduled consults can be marked as no-show")
	}
	c.status = ConsultStatusNoShow
	return nil
}

func (c *Consult) setReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return NewConstraintViolation("consult reason cannot be empty")
	}
	c.reason = reason
	return nil
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func sameClock(a, b time.Time) bool {
	return a.Hour() == b.Hour() && a.Minute() == b.Minute() && a.Second() == b.Second()
}
