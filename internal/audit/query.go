package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
	MaxPage         = 100_000
)

// Query selects a page of one user's audit trail. Zero values do not filter.
type Query struct {
	Action string
	Entity string
	From   time.Time
	To     time.Time
	Page   int
	Limit  int
}

func (q Query) Normalize() Query {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	if q.Limit <= 0 {
		q.Limit = DefaultPageSize
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	return q
}

// List returns the newest entries first along with the total match count.
func (l *Logger) List(ctx context.Context, userID uuid.UUID, q Query) ([]models.AuditLog, int64, error) {
	q = q.Normalize()

	base := l.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("user_id = ?", userID)

	if q.Action != "" {
		base = base.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		base = base.Where("entity = ?", q.Entity)
	}
	if !q.From.IsZero() {
		base = base.Where("created_at >= ?", q.From)
	}
	if !q.To.IsZero() {
		// inclusive of the whole "to" day
		base = base.Where("created_at < ?", q.To.Add(24*time.Hour))
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := base.Session(&gorm.Session{}).
		Order("created_at DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
