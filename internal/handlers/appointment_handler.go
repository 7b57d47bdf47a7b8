package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/care-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create *ucAppointment.CreateAppointment
	list   *ucAppointment.ListAppointments
	get    *ucAppointment.GetAppointment
	update *ucAppointment.UpdateAppointment
	cancel *ucAppointment.CancelAppointment
	log    *zap.Logger
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	list *ucAppointment.ListAppointments,
	get *ucAppointment.GetAppointment,
	update *ucAppointment.UpdateAppointment,
	cancel *ucAppointment.CancelAppointment,
	log *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		create: create,
		list:   list,
		get:    get,
		update: update,
		cancel: cancel,
		log:    log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	DoctorID string `json:"doctorId"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Type     string `json:"type"`
	Symptoms string `json:"symptoms"`
}

type UpdateAppointmentRequest struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Notes    string `json:"notes"`
	Symptoms string `json:"symptoms"`
}

// ======================================================
// ROUTES
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	rows, err := h.list.Execute(c.Request.Context(), mustUserID(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, rows)
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		UserID:   mustUserID(c),
		DoctorID: req.DoctorID,
		Date:     req.Date,
		Time:     req.Time,
		Type:     req.Type,
		Symptoms: req.Symptoms,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := pathID(c, domain.ErrNotFound)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), id, mustUserID(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, err := pathID(c, domain.ErrNotFound)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	var req UpdateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), id, mustUserID(c), ucAppointment.UpdateAppointmentInput{
		Date:     req.Date,
		Time:     req.Time,
		Notes:    req.Notes,
		Symptoms: req.Symptoms,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, err := pathID(c, domain.ErrNotFound)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if _, err := h.cancel.Execute(c.Request.Context(), id, mustUserID(c)); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Message(c, "Appointment cancelled successfully")
}
