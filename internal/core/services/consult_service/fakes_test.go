package consult_service

import (
	"context"
	"testing"
	"time"

	"github.com/easyconsult/consult-service/internal/config"
	"github.com/easyconsult/consult-service/internal/core/domain"
	"github.com/easyconsult/consult-service/internal/core/ports/out"
)

type nopLogger struct{}

func (nopLogger) Debug(string, out.LogFields)          {}
func (nopLogger) Info(string, out.LogFields)           {}
func (nopLogger) Warn(string, out.LogFields)           {}
func (nopLogger) Error(string, out.LogFields)          {}
func (l nopLogger) WithFields(out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(string) out.LoggerPort        { return l }

type fakeRepository struct {
	consults map[domain.ConsultID]*domain.Consult
	nextID   int64

	findErr   error
	saveErr   error
	deleteErr error
	emailErr  error
	filterErr error

	saveCalls   int
	filterCalls int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		consults: make(map[domain.ConsultID]*domain.Consult),
		nextID:   1,
	}
}

func (r *fakeRepository) FindByID(ctx context.Context, id domain.ConsultID) (*domain.Consult, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.consults[id], nil
}

func (r *fakeRepository) Save(ctx context.Context, consult *domain.Consult) (*domain.Consult, error) {
	r.saveCalls++
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	if consult.ID().IsZero() {
		consult.AssignID(domain.ConsultID(r.nextID))
		r.nextID++
	}
	r.consults[consult.ID()] = consult
	return consult, nil
}

func (r *fakeRepository) DeleteByID(ctx context.Context, id domain.ConsultID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.consults, id)
	return nil
}

func (r *fakeRepository) FindAllByPatientEmail(ctx context.Context, email string) ([]*domain.Consult, error) {
	if r.emailErr != nil {
		return nil, r.emailErr
	}
	var result []*domain.Consult
	for _, consult := range r.consults {
		if consult.Patient().Email() == email {
			result = append(result, consult)
		}
	}
	return result, nil
}

func (r *fakeRepository) FindAllWithDetails(ctx context.Context) ([]*domain.Consult, error) {
	if r.filterErr != nil {
		return nil, r.filterErr
	}
	var result []*domain.Consult
	for _, consult := range r.consults {
		result = append(result, consult)
	}
	return result, nil
}

func (r *fakeRepository) FindWithFilters(ctx context.Context, filter domain.ConsultFilter) ([]*domain.Consult, error) {
	r.filterCalls++
	if r.filterErr != nil {
		return nil, r.filterErr
	}
	var result []*domain.Consult
	for _, consult := range r.consults {
		if filter.PatientEmail != nil && consult.Patient().Email() != *filter.PatientEmail {
			continue
		}
		if filter.Status != nil && consult.Status() != *filter.Status {
			continue
		}
		result = append(result, consult)
	}
	return result, nil
}

type fakeRegion struct {
	data   map[string][]byte
	clears int
}

func newFakeRegion() *fakeRegion {
	return &fakeRegion{data: make(map[string][]byte)}
}

func (r *fakeRegion) Get(ctx context.Context, key string) ([]byte, bool) {
	value, ok := r.data[key]
	return value, ok
}

func (r *fakeRegion) Put(ctx context.Context, key string, value []byte) {
	r.data[key] = value
}

func (r *fakeRegion) Evict(ctx context.Context, key string) {
	delete(r.data, key)
}

func (r *fakeRegion) Clear(ctx context.Context) {
	r.clears++
	r.data = make(map[string][]byte)
}

type fakeCache struct {
	regions map[string]*fakeRegion
	missing map[string]bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		regions: map[string]*fakeRegion{
			out.CacheRegionConsults:         newFakeRegion(),
			out.CacheRegionAllConsults:      newFakeRegion(),
			out.CacheRegionConsultsByFilter: newFakeRegion(),
		},
		missing: make(map[string]bool),
	}
}

func (c *fakeCache) Region(name string) out.CacheRegionPort {
	if c.missing[name] {
		return nil
	}
	region, ok := c.regions[name]
	if !ok {
		return nil
	}
	return region
}

type publishedEvent struct {
	topic   string
	key     string
	payload []byte
}

type fakePublisher struct {
	events []publishedEvent
}

func (p *fakePublisher) Publish(ctx context.Context, topic string, key string, payload []byte) {
	p.events = append(p.events, publishedEvent{topic: topic, key: key, payload: payload})
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.RabbitMQ.ConsultTopic = "easyconsult.consult.changed"
	return cfg
}

func newTestService(repo *fakeRepository, cache *fakeCache, publisher *fakePublisher) *ConsultService {
	var cachePort out.CachePort
	if cache != nil {
		cachePort = cache
	}
	var events out.EventPublisherPort
	if publisher != nil {
		events = publisher
	}
	return NewConsultService(repo, cachePort, events, testConfig(), nopLogger{})
}

func newTestConsult(t *testing.T, reason, patientEmail string, date time.Time, clock time.Time) *domain.Consult {
	t.Helper()

	patient, err := domain.NewPatient(0, "Ana", patientEmail)
	if err != nil {
		t.Fatalf("NewPatient: %v", err)
	}
	professional, err := domain.NewProfessional(0, "Dr. Lee", "lee@x.com")
	if err != nil {
		t.Fatalf("NewProfessional: %v", err)
	}

	consult, err := domain.NewConsult(domain.ConsultParams{
		Reason:       reason,
		Patient:      patient,
		Professional: professional,
		Date:         date,
		Time:         clock,
	})
	if err != nil {
		t.Fatalf("NewConsult: %v", err)
	}
	return consult
}

func tomorrow() time.Time {
	return time.Now().AddDate(0, 0, 1)
}

func at(hour, minute int) time.Time {
	return time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)
}
