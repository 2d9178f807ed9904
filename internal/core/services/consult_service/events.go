package consult_service

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/easyconsult/consult-service/internal/core/domain"
	"github.com/easyconsult/consult-service/internal/core/ports/out"
)

// consultEventMessage is the denormalized view carried by change events.
type consultEventMessage struct {
	ID               string           `json:"id"`
	NameProfessional string           `json:"nameProfessional"`
	Patient          eventPatientData `json:"patient"`
	LocalTime        string           `json:"localTime"`
	Date             string           `json:"date"`
	Reason           string           `json:"reason"`
	StatusConsult    string           `json:"statusConsult"`
}

type eventPatientData struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// publishConsultEvent is fire-and-forget: publication failures never fail the
// business operation that produced the consult.
func (s *ConsultService) publishConsultEvent(ctx context.Context, consult *domain.Consult) {
	if s.events == nil {
		s.logger.Debug("consult.event.publisher_disabled", out.LogFields{
			"consultId": consult.ID(),
		})
		return
	}

	message := consultEventMessage{
		ID:               strconv.FormatInt(int64(consult.ID()), 10),
		NameProfessional: consult.Professional().Name(),
		Patient: eventPatientData{
			Name:  consult.Patient().Name(),
			Email: consult.Patient().Email(),
		},
		LocalTime:     consult.ScheduledTime().Format("15:04:05"),
		Date:          consult.ScheduledDate().Format("2006-01-02"),
		Reason:        consult.Reason(),
		StatusConsult: string(consult.Status()),
	}

	payload, err := json.Marshal(message)
	if err != nil {
		s.logger.Error("consult.event.encode_failed", out.LogFields{
			"consultId": consult.ID(),
			"error":     err.Error(),
		})
		return
	}

	s.events.Publish(ctx, s.cfg.RabbitMQ.ConsultTopic, message.ID, payload)
}
