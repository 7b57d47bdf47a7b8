package appointment

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
	"github.com/BruksfildServices01/care-scheduler/internal/timezone"
)

// UpdateAppointmentInput leaves a field untouched when it is empty.
type UpdateAppointmentInput struct {
	Date     string
	Time     string
	Notes    string
	Symptoms string
}

type UpdateAppointment struct {
	repo     domain.Repository
	audit    audit.Auditor
	timezone string
}

func NewUpdateAppointment(
	repo domain.Repository,
	auditor audit.Auditor,
	tz string,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:     repo,
		audit:    auditor,
		timezone: tz,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	id uuid.UUID,
	userID uuid.UUID,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	ch := domain.Changes{
		Time:     in.Time,
		Notes:    strings.TrimSpace(in.Notes),
		Symptoms: strings.TrimSpace(in.Symptoms),
	}
	if strings.TrimSpace(in.Date) != "" {
		d, err := timezone.ParseDate(in.Date, uc.timezone)
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		ch.Date = &d
	}

	moved, err := domain.Apply(ap, ch)
	if err != nil {
		return nil, err
	}

	if moved {
		taken, err := uc.repo.SlotTaken(ctx, ap.DoctorID, ap.Date, ap.Time, ap.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrSlotTaken
		}
	}

	if err := uc.repo.Update(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"rescheduled": moved},
	})

	return ap, nil
}
