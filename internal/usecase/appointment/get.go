package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

// Execute only finds appointments owned by userID.
func (uc *GetAppointment) Execute(
	ctx context.Context,
	id uuid.UUID,
	userID uuid.UUID,
) (*models.Appointment, error) {
	return uc.repo.GetForUser(ctx, id, userID)
}
