package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/consultation"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

type ConsultationGormRepository struct {
	db *gorm.DB
}

func NewConsultationGormRepository(db *gorm.DB) *ConsultationGormRepository {
	return &ConsultationGormRepository{db: db}
}

func (r *ConsultationGormRepository) Create(ctx context.Context, c *models.Consultation) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ConsultationGormRepository) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]models.Consultation, error) {

	var out []models.Consultation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(domain.ClampLimit(limit)).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ConsultationGormRepository) GetForUser(
	ctx context.Context,
	id uuid.UUID,
	userID uuid.UUID,
) (*models.Consultation, error) {

	var c models.Consultation
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

var _ domain.Repository = (*ConsultationGormRepository)(nil)
