package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/care-scheduler/internal/db"
	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Create / conflict
// --------------------------------------------------

func (r *AppointmentGormRepository) SlotTaken(
	ctx context.Context,
	doctorID uuid.UUID,
	date time.Time,
	slot string,
	exclude uuid.UUID,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"doctor_id = ? AND date = ? AND time = ? AND status IN ?",
			doctorID,
			date,
			slot,
			domain.ActiveStatuses,
		)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) Create(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).Omit("Doctor", "User").Create(ap).Error
	if db.IsUniqueViolation(err, db.ActiveSlotIndex) {
		return domain.ErrSlotTaken
	}
	return err
}

// --------------------------------------------------
// Ownership scoped reads
// --------------------------------------------------

func (r *AppointmentGormRepository) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "name", "specialty", "image_url")
		}).
		Where("user_id = ?", userID).
		Order("date DESC").
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) GetForUser(
	ctx context.Context,
	id uuid.UUID,
	userID uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor").
		Where("id = ? AND user_id = ?", id, userID).
		First(&ap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

// --------------------------------------------------
// State change
// --------------------------------------------------

func (r *AppointmentGormRepository) Update(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).
		Model(ap).
		Select("date", "time", "notes", "symptoms", "status", "cancelled_at", "completed_at").
		Updates(ap).Error
	if db.IsUniqueViolation(err, db.ActiveSlotIndex) {
		return domain.ErrSlotTaken
	}
	return err
}

// --------------------------------------------------
// Availability / maintenance
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBookedTimes(
	ctx context.Context,
	doctorID uuid.UUID,
	date time.Time,
) ([]string, error) {

	var times []string
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"doctor_id = ? AND date = ? AND status IN ?",
			doctorID,
			date,
			domain.ActiveStatuses,
		).
		Pluck("time", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

func (r *AppointmentGormRepository) ListActiveBefore(
	ctx context.Context,
	day time.Time,
	limit int,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Where("status IN ? AND date < ?", domain.ActiveStatuses, day).
		Order("date ASC").
		Limit(limit).
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
