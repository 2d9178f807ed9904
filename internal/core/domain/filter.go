package domain

import (
	"fmt"
	"time"
)

// ConsultFilter is a query predicate. All present fields are ANDed.
type ConsultFilter struct {
	PatientEmail      *string
	ProfessionalEmail *string
	Status            *ConsultStatus
	Date              *time.Time
	Time              *time.Time
}

func (f ConsultFilter) IsEmpty() bool {
	return f.PatientEmail == nil && f.ProfessionalEmail == nil && f.Status == nil && f.Date == nil && f.Time == nil
}

// Fingerprint is a stable serialization of the filter's field values, used to
// address cached query results.
func (f ConsultFilter) Fingerprint() string {
	return fmt.Sprintf("filter[%s-%s-%s-%s-%s]",
		stringOrNull(f.PatientEmail),
		stringOrNull(f.ProfessionalEmail),
		statusOrNull(f.Status),
		timeOrNull(f.Time, "15:04:05"),
		timeOrNull(f.Date, "2006-01-02"),
	)
}

func stringOrNull(s *string) string {
	if s == nil {
		return "null"
	}
	return *s
}

func statusOrNull(s *ConsultStatus) string {
	if s == nil {
		return "null"
	}
	return string(*s)
}

func timeOrNull(t *time.Time, layout string) string {
	if t == nil {
		return "null"
	}
	return t.Format(layout)
}
