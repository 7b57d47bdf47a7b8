package doctor

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

var ErrNotFound = httperr.NotFoundErr("doctor_not_found", "Doctor not found")

// Filter narrows a directory listing. Empty fields do not filter.
type Filter struct {
	Specialty     string
	AvailableOnly bool
	Search        string
}

// Normalize trims the text fields and treats specialty "all" as no filter.
func (f Filter) Normalize() Filter {
	f.Specialty = strings.TrimSpace(f.Specialty)
	f.Search = strings.TrimSpace(f.Search)
	if strings.EqualFold(f.Specialty, "all") {
		f.Specialty = ""
	}
	return f
}

type Repository interface {
	// List returns doctors sorted by rating, highest first.
	List(ctx context.Context, f Filter) ([]models.Doctor, error)

	GetByID(ctx context.Context, id uuid.UUID) (*models.Doctor, error)

	ListSpecialties(ctx context.Context) ([]string, error)
}

// Writer is used by administrative seeding only.
type Writer interface {
	UpsertByEmail(ctx context.Context, d *models.Doctor) error
	UpdateImage(ctx context.Context, id uuid.UUID, url string) error
}

// ParseID maps malformed ids to ErrNotFound, the same answer an unknown id gets.
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, ErrNotFound
	}
	return id, nil
}

// Matches applies f in memory with the same semantics as the repository query.
func (f Filter) Matches(d *models.Doctor) bool {
	f = f.Normalize()
	if f.AvailableOnly && !d.Available {
		return false
	}
	if f.Specialty != "" && !containsFold(d.Specialty, f.Specialty) {
		return false
	}
	if f.Search != "" && !containsFold(d.Name, f.Search) && !containsFold(d.Specialty, f.Search) {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
