package domain

import "fmt"

type ConsultStatus string

const (
	ConsultStatusScheduled ConsultStatus = "SCHEDULED"
	ConsultStatusCancelled ConsultStatus = "CANCELLED"
	ConsultStatusCompleted ConsultStatus = "COMPLETED"
	ConsultStatusNoShow    ConsultStatus = "NO_SHOW"
)

func ParseConsultStatus(value string) (ConsultStatus, error) {
	switch ConsultStatus(value) {
	case ConsultStatusScheduled, ConsultStatusCancelled, ConsultStatusCompleted, ConsultStatusNoShow:
		return ConsultStatus(value), nil
	}
	return "", NewConstraintViolation(fmt.Sprintf("unknown consult status: %q", value))
}

// IsFinalized reports whether the status is terminal. Finalized consults accept
// no further transitions.
func (s ConsultStatus) IsFinalized() bool {
	switch s {
	case ConsultStatusCancelled, ConsultStatusCompleted, ConsultStatusNoShow:
		return true
	}
	return false
}

func (s ConsultStatus) CanBeCancelled() bool {
	return s == ConsultStatusScheduled
}
