package consultation

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/consultation"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

type ListConsultations struct {
	repo domain.Repository
}

func NewListConsultations(repo domain.Repository) *ListConsultations {
	return &ListConsultations{repo: repo}
}

// Execute returns at most the 50 newest consultations of the user.
func (uc *ListConsultations) Execute(ctx context.Context, userID uuid.UUID, limit int) ([]models.Consultation, error) {
	return uc.repo.ListForUser(ctx, userID, domain.ClampLimit(limit))
}

type GetConsultation struct {
	repo domain.Repository
}

func NewGetConsultation(repo domain.Repository) *GetConsultation {
	return &GetConsultation{repo: repo}
}

func (uc *GetConsultation) Execute(ctx context.Context, id, userID uuid.UUID) (*models.Consultation, error) {
	return uc.repo.GetForUser(ctx, id, userID)
}
