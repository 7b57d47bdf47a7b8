package consultation

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

const (
	DefaultListLimit = 50
	MinSymptomsChars = 5
)

var (
	ErrNotFound         = httperr.NotFoundErr("consultation_not_found", "Consultation not found")
	ErrSymptomsTooShort = httperr.Validation("symptoms_too_short", "Please provide a detailed description of your symptoms (at least 5 characters)")
)

// Repository is append-only: consultations are never updated or deleted.
type Repository interface {
	Create(ctx context.Context, c *models.Consultation) error

	// ListForUser returns the newest consultations first.
	ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Consultation, error)

	GetForUser(ctx context.Context, id, userID uuid.UUID) (*models.Consultation, error)
}

func ClampLimit(limit int) int {
	if limit <= 0 || limit > DefaultListLimit {
		return DefaultListLimit
	}
	return limit
}
