package medicine

import (
	"context"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	// MaxPage keeps (Page-1)*Limit far from int overflow.
	MaxPage = 100_000
)

var ErrNotFound = httperr.NotFoundErr("medicine_not_found", "Medicine not found")

type Query struct {
	Text  string
	Page  int
	Limit int
}

// Normalize clamps paging to sane bounds.
func (q Query) Normalize() Query {
	q.Text = strings.TrimSpace(q.Text)
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageSize
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	return q
}

func (q Query) Offset() int {
	return (q.Page - 1) * q.Limit
}

type Page struct {
	Medicines      []models.Medicine `json:"medicines"`
	CurrentPage    int               `json:"currentPage"`
	TotalPages     int               `json:"totalPages"`
	TotalMedicines int64             `json:"totalMedicines"`
}

func NewPage(q Query, items []models.Medicine, total int64) Page {
	if items == nil {
		items = []models.Medicine{}
	}
	return Page{
		Medicines:      items,
		CurrentPage:    q.Page,
		TotalPages:     int(math.Ceil(float64(total) / float64(q.Limit))),
		TotalMedicines: total,
	}
}

type Repository interface {
	// Search matches q.Text case-insensitively against name or composition,
	// ordered by name.
	Search(ctx context.Context, q Query) ([]models.Medicine, int64, error)

	GetByID(ctx context.Context, id uuid.UUID) (*models.Medicine, error)

	CreateBatch(ctx context.Context, items []models.Medicine) error
}
