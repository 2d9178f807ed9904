package consult_service

import (
	"github.com/easyconsult/consult-service/internal/core/domain"
)

// checkSchedulingConflict rejects a candidate whose (date, time) pair exactly
// matches any existing consult for the same patient. Point-in-time collision,
// not interval overlap: consults carry no duration.
//
// The patient/professional presence check runs here as well, against the
// scheduling context rather than the aggregate's own constructor.
func checkSchedulingConflict(candidate *domain.Consult, existingForSamePatient []*domain.Consult) error {
	if candidate.Patient().IsZero() || candidate.Professional().IsZero() {
		return domain.NewBusinessRule("Patient or Professional information is missing.")
	}

	for _, existing := range existingForSamePatient {
		if candidate.SameSchedule(existing) {
			return domain.NewBusinessRule("It is not permitted to schedule a new appointment for a date and time that already has an appointment registered.")
		}
	}
	return nil
}
