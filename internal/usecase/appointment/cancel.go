package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
	"github.com/BruksfildServices01/care-scheduler/internal/timezone"
)

type CancelAppointment struct {
	repo     domain.Repository
	audit    audit.Auditor
	timezone string
}

func NewCancelAppointment(
	repo domain.Repository,
	auditor audit.Auditor,
	tz string,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		audit:    auditor,
		timezone: tz,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	id uuid.UUID,
	userID uuid.UUID,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(uc.timezone)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
