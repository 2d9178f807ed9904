package consult_service

import (
	"testing"

	"github.com/easyconsult/consult-service/internal/core/domain"
)

func TestCheckSchedulingConflict_RejectsIdenticalDateTime(t *testing.T) {
	day := tomorrow()
	candidate := newTestConsult(t, "Routine checkup", "ana@x.com", day, at(14, 30))
	existing := newTestConsult(t, "Earlier booking", "ana@x.com", day, at(14, 30))

	err := checkSchedulingConflict(candidate, []*domain.Consult{existing})
	if !domain.IsBusinessRule(err) {
		t.Fatalf("expected business rule error, got %v", err)
	}
}

func TestCheckSchedulingConflict_AcceptsDifferentTimeOrDate(t *testing.T) {
	day := tomorrow()
	candidate := newTestConsult(t, "Routine checkup", "ana@x.com", day, at(14, 30))

	differentTime := newTestConsult(t, "Earlier booking", "ana@x.com", day, at(15, 0))
	if err := checkSchedulingConflict(candidate, []*domain.Consult{differentTime}); err != nil {
		t.Fatalf("different time must not conflict: %v", err)
	}

	differentDate := newTestConsult(t, "Earlier booking", "ana@x.com", day.AddDate(0, 0, 1), at(14, 30))
	if err := checkSchedulingConflict(candidate, []*domain.Consult{differentDate}); err != nil {
		t.Fatalf("different date must not conflict: %v", err)
	}

	if err := checkSchedulingConflict(candidate, nil); err != nil {
		t.Fatalf("no existing consults must not conflict: %v", err)
	}
}
