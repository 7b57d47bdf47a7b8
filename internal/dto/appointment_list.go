package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

type DoctorSummaryDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
	Image     string    `json:"image"`
}

// AppointmentListDTO is one row of a patient's appointment history.
type AppointmentListDTO struct {
	ID         uuid.UUID         `json:"id"`
	Doctor     *DoctorSummaryDTO `json:"doctor"`
	DoctorName string            `json:"doctorName"`
	Date       string            `json:"date"`
	Time       string            `json:"time"`
	Type       string            `json:"type"`
	Status     string            `json:"status"`
	Symptoms   string            `json:"symptoms,omitempty"`
	Notes      string            `json:"notes,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
}

func NewAppointmentListDTO(ap models.Appointment) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:         ap.ID,
		DoctorName: ap.DoctorName,
		Date:       ap.Date.Format("2006-01-02"),
		Time:       ap.Time,
		Type:       ap.Type,
		Status:     ap.Status,
		Symptoms:   ap.Symptoms,
		Notes:      ap.Notes,
		CreatedAt:  ap.CreatedAt,
	}
	if ap.Doctor != nil {
		out.Doctor = &DoctorSummaryDTO{
			ID:        ap.Doctor.ID,
			Name:      ap.Doctor.Name,
			Specialty: ap.Doctor.Specialty,
			Image:     ap.Doctor.ImageURL,
		}
	}
	return out
}
