package appointment

import (
	"net/http"

	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
)

var (
	ErrMissingFields     = httperr.Validation("missing_fields", "Please provide doctorId, date, and time")
	ErrInvalidDate       = httperr.Validation("invalid_date", "Please provide a valid date (YYYY-MM-DD)")
	ErrInvalidType       = httperr.Validation("invalid_type", "Appointment type must be consultation, home-visit, video-call or emergency")
	ErrDoctorNotFound    = httperr.NotFoundErr("doctor_not_found", "Doctor not found")
	ErrDoctorUnavailable = httperr.Validation("doctor_unavailable", "Doctor is currently not available for appointments")
	ErrSlotTaken         = httperr.New(http.StatusBadRequest, "slot_taken", "This time slot is already booked")
	ErrNotFound          = httperr.NotFoundErr("appointment_not_found", "Appointment not found")
	ErrCannotModify      = httperr.Validation("cannot_modify", "Cannot update a completed or cancelled appointment")
)
