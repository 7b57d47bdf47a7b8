package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/medicine"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

const medicineBatchSize = 500

type MedicineGormRepository struct {
	db *gorm.DB
}

func NewMedicineGormRepository(db *gorm.DB) *MedicineGormRepository {
	return &MedicineGormRepository{db: db}
}

func (r *MedicineGormRepository) Search(
	ctx context.Context,
	q domain.Query,
) ([]models.Medicine, int64, error) {

	q = q.Normalize()

	base := r.db.WithContext(ctx).Model(&models.Medicine{})
	if q.Text != "" {
		like := likePattern(q.Text)
		base = base.Where("(name ILIKE ? OR composition ILIKE ?)", like, like)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Medicine
	err := base.Session(&gorm.Session{}).
		Order("name ASC").
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *MedicineGormRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Medicine, error) {
	var m models.Medicine
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MedicineGormRepository) CreateBatch(ctx context.Context, items []models.Medicine) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(items, medicineBatchSize).Error
}

var _ domain.Repository = (*MedicineGormRepository)(nil)
