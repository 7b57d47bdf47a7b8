package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

type Repository interface {
	// -------- Create / conflict --------
	// Create returns ErrSlotTaken when the storage layer rejects a second
	// active appointment for the same slot.
	Create(ctx context.Context, ap *models.Appointment) error

	// SlotTaken ignores the appointment identified by exclude.
	SlotTaken(
		ctx context.Context,
		doctorID uuid.UUID,
		date time.Time,
		slot string,
		exclude uuid.UUID,
	) (bool, error)

	// -------- Ownership scoped reads --------
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Appointment, error)

	GetForUser(ctx context.Context, id, userID uuid.UUID) (*models.Appointment, error)

	// -------- State change --------
	Update(ctx context.Context, ap *models.Appointment) error

	// -------- Availability / maintenance --------
	ListBookedTimes(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]string, error)

	// ListActiveBefore returns pending or confirmed appointments dated
	// before day, oldest first.
	ListActiveBefore(ctx context.Context, day time.Time, limit int) ([]models.Appointment, error)
}
