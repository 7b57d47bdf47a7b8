package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/care-scheduler/internal/domain/doctor"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/care-scheduler/internal/usecase/appointment"
)

type DoctorHandler struct {
	doctors      doctor.Repository
	availability *ucAppointment.GetAvailability
	log          *zap.Logger
}

func NewDoctorHandler(
	doctors doctor.Repository,
	availability *ucAppointment.GetAvailability,
	log *zap.Logger,
) *DoctorHandler {
	return &DoctorHandler{
		doctors:      doctors,
		availability: availability,
		log:          log,
	}
}

func (h *DoctorHandler) List(c *gin.Context) {
	f := doctor.Filter{
		Specialty:     c.Query("specialty"),
		AvailableOnly: strings.EqualFold(c.Query("available"), "true"),
		Search:        c.Query("search"),
	}

	doctors, err := h.doctors.List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, doctors)
}

func (h *DoctorHandler) Get(c *gin.Context) {
	id, err := pathID(c, doctor.ErrNotFound)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	d, err := h.doctors.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, d)
}

func (h *DoctorHandler) Specialties(c *gin.Context) {
	specs, err := h.doctors.ListSpecialties(c.Request.Context())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if specs == nil {
		specs = []string{}
	}
	httpresp.OK(c, specs)
}

func (h *DoctorHandler) Availability(c *gin.Context) {
	day, err := h.availability.Execute(c.Request.Context(), c.Param("id"), c.Query("date"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, day)
}
