package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/easyconsult/consult-service/internal/config"
	"github.com/easyconsult/consult-service/internal/core/domain"
)

type stubUseCases struct {
	createdConsult *domain.Consult
	createErr      error
	updatedConsult *domain.Consult
	updateErr      error
	deleteErr      error
	allConsults    []*domain.Consult
	findAllErr     error
	filtered       []*domain.Consult
	filterErr      error

	lastUpdate domain.UpdateConsult
	lastDelete domain.ConsultID
	lastFilter domain.ConsultFilter
}

func (s *stubUseCases) CreateConsult(ctx context.Context, consult *domain.Consult) (*domain.Consult, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.createdConsult != nil {
		return s.createdConsult, nil
	}
	consult.AssignID(42)
	return consult, nil
}

func (s *stubUseCases) UpdateConsult(ctx context.Context, update domain.UpdateConsult) (*domain.Consult, error) {
	s.lastUpdate = update
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.updatedConsult, nil
}

func (s *stubUseCases) DeleteConsult(ctx context.Context, id domain.ConsultID) error {
	s.lastDelete = id
	return s.deleteErr
}

func (s *stubUseCases) FindAll(ctx context.Context) ([]*domain.Consult, error) {
	if s.findAllErr != nil {
		return nil, s.findAllErr
	}
	return s.allConsults, nil
}

func (s *stubUseCases) FindWithFilters(ctx context.Context, filter domain.ConsultFilter) ([]*domain.Consult, error) {
	s.lastFilter = filter
	if s.filterErr != nil {
		return nil, s.filterErr
	}
	return s.filtered, nil
}

func testRouter(t *testing.T, stub *stubUseCases) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Auth.BasicClients = []config.ConfigBasicClient{{Username: "client", Password: "secret"}}

	router := gin.New()
	NewConsultController(stub, stub, cfg).RegisterRoutes(router)
	return router
}

func authedRequest(method, target, body string) *http.Request {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("client", "secret")
	return req
}

func sampleConsult(t *testing.T) *domain.Consult {
	t.Helper()

	patient, err := domain.NewPatient(1, "Ana", "ana@x.com")
	if err != nil {
		t.Fatalf("NewPatient: %v", err)
	}
	professional, err := domain.NewProfessional(2, "Dr. Lee", "lee@x.com")
	if err != nil {
		t.Fatalf("NewProfessional: %v", err)
	}
	consult, err := domain.NewConsult(domain.ConsultParams{
		ID:           7,
		Reason:       "Routine checkup",
		Patient:      patient,
		Professional: professional,
		Date:         time.Now().AddDate(0, 0, 1),
		Time:         time.Date(0, 1, 1, 14, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("NewConsult: %v", err)
	}
	return consult
}

func TestCreateConsultEndpoint(t *testing.T) {
	router := testRouter(t, &stubUseCases{})

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	body := `{
		"reason": "Routine checkup",
		"patient": {"name": "Ana", "email": "ana@x.com"},
		"professional": {"name": "Dr. Lee", "email": "lee@x.com"},
		"date": "` + tomorrow + `",
		"time": "14:30"
	}`

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest(http.MethodPost, "/api/v1/consults", body))

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body)
	}

	var response struct {
		Consult domain.ConsultSnapshot `json:"consult"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response.Consult.ID != 42 {
		t.Fatalf("expected assigned id in response, got %d", response.Consult.ID)
	}
	if response.Consult.Status != string(domain.ConsultStatusScheduled) {
		t.Fatalf("unexpected status: %s", response.Consult.Status)
	}
}

func TestCreateConsultEndpointRejectsMalformedBody(t *testing.T) {
	router := testRouter(t, &stubUseCases{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest(http.MethodPost, "/api/v1/consults", `{"reason": ""}`))

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}

func TestErrorCodeMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"constraint violation", domain.NewConstraintViolation("Reason is required."), http.StatusBadRequest, "CONSTRAINT_VIOLATION"},
		{"business rule", domain.NewBusinessRule("It is not permitted to schedule a new appointment for a date and time that already has an appointment registered."), http.StatusUnprocessableEntity, "CONSULT_VALIDATION_ERROR"},
		{"not found", domain.NewNotFound("No consults found."), http.StatusNotFound, "CONSULT_NOT_FOUND"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := testRouter(t, &stubUseCases{findAllErr: tc.err})

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, authedRequest(http.MethodGet, "/api/v1/consults", ""))

			if recorder.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, recorder.Code)
			}

			var response struct {
				Code  string `json:"code"`
				Error string `json:"error"`
			}
			if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if response.Code != tc.wantCode {
				t.Fatalf("expected code %s, got %s", tc.wantCode, response.Code)
			}
		})
	}
}

func TestGetAllConsultsEndpoint(t *testing.T) {
	router := testRouter(t, &stubUseCases{allConsults: []*domain.Consult{sampleConsult(t)}})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest(http.MethodGet, "/api/v1/consults", ""))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body)
	}

	var response struct {
		Consults []domain.ConsultSnapshot `json:"consults"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(response.Consults) != 1 || response.Consults[0].ID != 7 {
		t.Fatalf("unexpected response: %+v", response.Consults)
	}
}

func TestSearchEndpointBuildsFilter(t *testing.T) {
	stub := &stubUseCases{filtered: []*domain.Consult{sampleConsult(t)}}
	router := testRouter(t, stub)

	body := `{"patientEmail": "ana@x.com", "status": "SCHEDULED"}`
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest(http.MethodPost, "/api/v1/consults/search", body))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body)
	}
	if stub.lastFilter.PatientEmail == nil || *stub.lastFilter.PatientEmail != "ana@x.com" {
		t.Fatalf("patient email not forwarded: %+v", stub.lastFilter)
	}
	if stub.lastFilter.Status == nil || *stub.lastFilter.Status != domain.ConsultStatusScheduled {
		t.Fatalf("status not forwarded: %+v", stub.lastFilter)
	}
}

func TestSearchEndpointRejectsUnknownStatus(t *testing.T) {
	router := testRouter(t, &stubUseCases{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest(http.MethodPost, "/api/v1/consults/search", `{"status": "PENDING"}`))

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown status, got %d", recorder.Code)
	}
}

func TestUpdateConsultEndpoint(t *testing.T) {
	stub := &stubUseCases{updatedConsult: sampleConsult(t)}
	router := testRouter(t, stub)

	body := `{"id": 7, "reason": "Follow-up", "status": "COMPLETED"}`
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest(http.MethodPatch, "/api/v1/consults", body))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body)
	}
	if stub.lastUpdate.ID != 7 {
		t.Fatalf("id not forwarded: %+v", stub.lastUpdate)
	}
	if stub.lastUpdate.Reason == nil || *stub.lastUpdate.Reason != "Follow-up" {
		t.Fatalf("reason not forwarded: %+v", stub.lastUpdate)
	}
	if stub.lastUpdate.Status == nil || *stub.lastUpdate.Status != domain.ConsultStatusCompleted {
		t.Fatalf("status not forwarded: %+v", stub.lastUpdate)
	}
	if stub.lastUpdate.Date != nil || stub.lastUpdate.Time != nil {
		t.Fatalf("absent fields must stay nil: %+v", stub.lastUpdate)
	}
}

func TestDeleteConsultEndpoint(t *testing.T) {
	stub := &stubUseCases{}
	router := testRouter(t, stub)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest(http.MethodDelete, "/api/v1/consults/7", ""))

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", recorder.Code)
	}
	if stub.lastDelete != 7 {
		t.Fatalf("id not forwarded: %d", stub.lastDelete)
	}
}

func TestDeleteConsultEndpointRejectsBadID(t *testing.T) {
	router := testRouter(t, &stubUseCases{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest(http.MethodDelete, "/api/v1/consults/abc", ""))

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}

func TestBasicAuthRequired(t *testing.T) {
	router := testRouter(t, &stubUseCases{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/consults", nil))

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credentials, got %d", recorder.Code)
	}
}

func TestBasicAuthRejectsWrongPassword(t *testing.T) {
	router := testRouter(t, &stubUseCases{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/consults", nil)
	req.SetBasicAuth("client", "wrong")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad credentials, got %d", recorder.Code)
	}
}

func TestHealthEndpointIsPublic(t *testing.T) {
	router := testRouter(t, &stubUseCases{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
}
