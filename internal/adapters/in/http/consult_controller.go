package http

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/easyconsult/consult-service/internal/config"
	"github.com/easyconsult/consult-service/internal/core/domain"
	"github.com/easyconsult/consult-service/internal/core/json_types"
	"github.com/easyconsult/consult-service/internal/core/ports/in"
)

type ConsultController struct {
	commands in.ConsultCommandUseCase
	queries  in.ConsultQueryUseCase
	cfg      *config.Config
}

func NewConsultController(commands in.ConsultCommandUseCase, queries in.ConsultQueryUseCase, cfg *config.Config) *ConsultController {
	return &ConsultController{
		commands: commands,
		queries:  queries,
		cfg:      cfg,
	}
}

func (c *ConsultController) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", c.health)

	api := router.Group("/api/v1")
	api.Use(c.basicAuth())
	{
		api.POST("/consults", c.createConsult)
		api.GET("/consults", c.getAllConsults)
		api.POST("/consults/search", c.getFilteredConsults)
		api.PATCH("/consults", c.updateConsult)
		api.DELETE("/consults/:consultId", c.deleteConsult)
	}
}

type PartyRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

type CreateConsultRequest struct {
	Reason       string          `json:"reason" binding:"required"`
	Patient      PartyRequest    `json:"patient" binding:"required"`
	Professional PartyRequest    `json:"professional" binding:"required"`
	Date         json_types.Date `json:"date" binding:"required"`
	Time         json_types.Time `json:"time" binding:"required"`
}

type UpdateConsultRequest struct {
	ID     int64            `json:"id" binding:"required"`
	Reason *string          `json:"reason"`
	Date   *json_types.Date `json:"date"`
	Time   *json_types.Time `json:"time"`
	Status *string          `json:"status"`
}

type FilterConsultsRequest struct {
	PatientEmail      *string          `json:"patientEmail"`
	ProfessionalEmail *string          `json:"professionalEmail"`
	Status            *string          `json:"status"`
	Date              *json_types.Date `json:"date"`
	Time              *json_types.Time `json:"time"`
}

func (c *ConsultController) createConsult(ctx *gin.Context) {
	var req CreateConsultRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patient, err := domain.NewPatient(0, req.Patient.Name, req.Patient.Email)
	if err != nil {
		respondError(ctx, err)
		return
	}
	professional, err := domain.NewProfessional(0, req.Professional.Name, req.Professional.Email)
	if err != nil {
		respondError(ctx, err)
		return
	}

	consult, err := domain.NewConsult(domain.ConsultParams{
		Reason:       req.Reason,
		Patient:      patient,
		Professional: professional,
		Date:         req.Date.Date,
		Time:         req.Time.Time,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	created, err := c.commands.CreateConsult(ctx.Request.Context(), consult)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"consult": created.Snapshot()})
}

func (c *ConsultController) updateConsult(ctx *gin.Context) {
	var req UpdateConsultRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := domain.UpdateConsult{
		ID:     domain.ConsultID(req.ID),
		Reason: req.Reason,
	}
	if req.Date != nil {
		update.Date = &req.Date.Date
	}
	if req.Time != nil {
		update.Time = &req.Time.Time
	}
	if req.Status != nil {
		status, err := domain.ParseConsultStatus(*req.Status)
		if err != nil {
			respondError(ctx, err)
			return
		}
		update.Status = &status
	}

	updated, err := c.commands.UpdateConsult(ctx.Request.Context(), update)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"consult": updated.Snapshot()})
}

func (c *ConsultController) deleteConsult(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("consultId"), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid consult ID format"})
		return
	}

	if err := c.commands.DeleteConsult(ctx.Request.Context(), domain.ConsultID(id)); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *ConsultController) getAllConsults(ctx *gin.Context) {
	consults, err := c.queries.FindAll(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"consults": toSnapshots(consults)})
}

func (c *ConsultController) getFilteredConsults(ctx *gin.Context) {
	var req FilterConsultsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := domain.ConsultFilter{
		PatientEmail:      req.PatientEmail,
		ProfessionalEmail: req.ProfessionalEmail,
	}
	if req.Status != nil {
		status, err := domain.ParseConsultStatus(*req.Status)
		if err != nil {
			respondError(ctx, err)
			return
		}
		filter.Status = &status
	}
	if req.Date != nil {
		filter.Date = &req.Date.Date
	}
	if req.Time != nil {
		filter.Time = &req.Time.Time
	}

	consults, err := c.queries.FindWithFilters(ctx.Request.Context(), filter)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"consults": toSnapshots(consults)})
}

func (c *ConsultController) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"version":   c.cfg.App.Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// respondError maps the domain error taxonomy onto HTTP status codes:
// constraint violations are malformed input, business rules are rejected
// operations, absence is 404, anything else is an opaque 500.
func respondError(ctx *gin.Context, err error) {
	code := domain.CodeOf(err)

	status := http.StatusInternalServerError
	switch code {
	case domain.ErrCodeConstraintViolation:
		status = http.StatusBadRequest
	case domain.ErrCodeBusinessRule:
		status = http.StatusUnprocessableEntity
	case domain.ErrCodeNotFound:
		status = http.StatusNotFound
	}

	message := err.Error()
	var de *domain.Error
	if errors.As(err, &de) {
		message = de.Message
	}

	ctx.JSON(status, gin.H{
		"code":  string(code),
		"error": message,
	})
}

func toSnapshots(consults []*domain.Consult) []domain.ConsultSnapshot {
	snapshots := make([]domain.ConsultSnapshot, 0, len(consults))
	for _, consult := range consults {
		snapshots = append(snapshots, consult.Snapshot())
	}
	return snapshots
}

func (c *ConsultController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		for _, client := range c.cfg.Auth.BasicClients {
			if subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1 &&
				subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1 {
				ctx.Next()
				return
			}
		}

		ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
		ctx.AbortWithStatus(http.StatusUnauthorized)
	}
}
