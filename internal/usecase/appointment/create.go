package appointment

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/domain/doctor"
	"github.com/BruksfildServices01/care-scheduler/internal/metrics"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
	"github.com/BruksfildServices01/care-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	UserID   uuid.UUID
	DoctorID string
	Date     string
	Time     string
	Type     string
	Symptoms string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	doctors  doctor.Repository
	audit    audit.Auditor
	timezone string
}

func NewCreateAppointment(
	repo domain.Repository,
	doctors doctor.Repository,
	auditor audit.Auditor,
	tz string,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		doctors:  doctors,
		audit:    auditor,
		timezone: tz,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Required fields
	// --------------------------------------------------
	slot := domain.NormalizeTime(in.Time)
	if strings.TrimSpace(in.DoctorID) == "" || strings.TrimSpace(in.Date) == "" || slot == "" {
		return nil, domain.ErrMissingFields
	}

	// --------------------------------------------------
	// 2. Date (calendar day in the clinic timezone)
	// --------------------------------------------------
	date, err := timezone.ParseDate(in.Date, uc.timezone)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}

	kind, err := domain.ParseType(strings.TrimSpace(in.Type))
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Doctor
	// --------------------------------------------------
	doctorID, err := doctor.ParseID(in.DoctorID)
	if err != nil {
		return nil, domain.ErrDoctorNotFound
	}
	doc, err := uc.doctors.GetByID(ctx, doctorID)
	if errors.Is(err, doctor.ErrNotFound) {
		return nil, domain.ErrDoctorNotFound
	}
	if err != nil {
		return nil, err
	}
	if !doc.Available {
		return nil, domain.ErrDoctorUnavailable
	}

	// --------------------------------------------------
	// 4. Slot conflict
	// --------------------------------------------------
	taken, err := uc.repo.SlotTaken(ctx, doc.ID, date, slot, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		uc.conflict(in.UserID, doc.ID, date.Format(timezone.DateLayout), slot)
		return nil, domain.ErrSlotTaken
	}

	// --------------------------------------------------
	// 5. Insert; the active slot index settles races
	// --------------------------------------------------
	ap := &models.Appointment{
		UserID:     in.UserID,
		DoctorID:   doc.ID,
		DoctorName: doc.Name,
		Date:       date,
		Time:       slot,
		Type:       string(kind),
		Status:     string(domain.InitialStatus()),
		Symptoms:   strings.TrimSpace(in.Symptoms),
	}

	if err := uc.repo.Create(ctx, ap); err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			uc.conflict(in.UserID, doc.ID, date.Format(timezone.DateLayout), slot)
		}
		return nil, err
	}
	ap.Doctor = doc
	metrics.AppointmentsBooked.Inc()

	// --------------------------------------------------
	// 6. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"doctorId": doc.ID,
			"date":     date.Format(timezone.DateLayout),
			"time":     slot,
		},
	})

	return ap, nil
}

func (uc *CreateAppointment) conflict(userID, doctorID uuid.UUID, date, slot string) {
	metrics.SlotConflicts.Inc()
	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_conflict",
		Entity:   "appointment",
		Metadata: map[string]any{"doctorId": doctorID, "date": date, "time": slot},
	})
}
