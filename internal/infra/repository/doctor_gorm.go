package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/doctor"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

type DoctorGormRepository struct {
	db *gorm.DB
}

func NewDoctorGormRepository(db *gorm.DB) *DoctorGormRepository {
	return &DoctorGormRepository{db: db}
}

func (r *DoctorGormRepository) List(ctx context.Context, f domain.Filter) ([]models.Doctor, error) {
	f = f.Normalize()

	q := r.db.WithContext(ctx).Model(&models.Doctor{})

	if f.Specialty != "" {
		q = q.Where("specialty ILIKE ?", likePattern(f.Specialty))
	}
	if f.AvailableOnly {
		q = q.Where("available = ?", true)
	}
	if f.Search != "" {
		like := likePattern(f.Search)
		q = q.Where("(name ILIKE ? OR specialty ILIKE ?)", like, like)
	}

	var doctors []models.Doctor
	if err := q.Order("rating DESC").Order("name ASC").Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *DoctorGormRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Doctor, error) {
	var d models.Doctor
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DoctorGormRepository) ListSpecialties(ctx context.Context) ([]string, error) {
	var out []string
	err := r.db.WithContext(ctx).
		Model(&models.Doctor{}).
		Distinct("specialty").
		Order("specialty ASC").
		Pluck("specialty", &out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Seeding
// --------------------------------------------------

// UpsertByEmail leaves d.ID set to the stored row's id.
func (r *DoctorGormRepository) UpsertByEmail(ctx context.Context, d *models.Doctor) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "specialty", "rating", "experience", "available",
				"phone", "bio", "consultation_fee", "languages", "updated_at",
			}),
		}, clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
		Create(d).Error
}

func (r *DoctorGormRepository) UpdateImage(ctx context.Context, id uuid.UUID, url string) error {
	return r.db.WithContext(ctx).
		Model(&models.Doctor{}).
		Where("id = ?", id).
		Update("image_url", url).Error
}

var (
	_ domain.Repository = (*DoctorGormRepository)(nil)
	_ domain.Writer     = (*DoctorGormRepository)(nil)
)
