package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/consultation"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/care-scheduler/internal/middleware"
	ucConsultation "github.com/BruksfildServices01/care-scheduler/internal/usecase/consultation"
)

// Pinger reports whether the external model is reachable.
type Pinger interface {
	Ping(ctx context.Context) bool
}

type AIHandler struct {
	analyze *ucConsultation.Analyze
	list    *ucConsultation.ListConsultations
	get     *ucConsultation.GetConsultation
	pinger  Pinger
	log     *zap.Logger
}

func NewAIHandler(
	analyze *ucConsultation.Analyze,
	list *ucConsultation.ListConsultations,
	get *ucConsultation.GetConsultation,
	pinger Pinger,
	log *zap.Logger,
) *AIHandler {
	return &AIHandler{
		analyze: analyze,
		list:    list,
		get:     get,
		pinger:  pinger,
		log:     log,
	}
}

type AnalyzeRequest struct {
	Symptoms string `json:"symptoms"`
}

func (h *AIHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.analyze.Execute(c.Request.Context(), middleware.OptionalUserID(c), req.Symptoms)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *AIHandler) Consultations(c *gin.Context) {
	rows, err := h.list.Execute(c.Request.Context(), mustUserID(c), queryInt(c, "limit", domain.DefaultListLimit))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, rows)
}

func (h *AIHandler) Consultation(c *gin.Context) {
	id, err := pathID(c, domain.ErrNotFound)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	row, err := h.get.Execute(c.Request.Context(), id, mustUserID(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, row)
}

func (h *AIHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	c.JSON(http.StatusOK, gin.H{
		"success":                  true,
		"status":                   "operational",
		"externalServiceConnected": h.pinger.Ping(ctx),
		"timestamp":                time.Now().UTC().Format(time.RFC3339),
	})
}
