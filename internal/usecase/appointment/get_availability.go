package appointment

import (
	"context"
	"errors"
	"strings"

	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/domain/doctor"
	"github.com/BruksfildServices01/care-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo     domain.Repository
	doctors  doctor.Repository
	timezone string
}

func NewGetAvailability(
	repo domain.Repository,
	doctors doctor.Repository,
	tz string,
) *GetAvailability {
	return &GetAvailability{
		repo:     repo,
		doctors:  doctors,
		timezone: tz,
	}
}

// Execute lists the day's standard slots for a doctor. An empty date means
// today in the clinic timezone.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	doctorID string,
	date string,
) (doctor.DayAvailability, error) {

	id, err := doctor.ParseID(doctorID)
	if err != nil {
		return doctor.DayAvailability{}, err
	}

	day := timezone.Today(uc.timezone)
	if strings.TrimSpace(date) != "" {
		if day, err = timezone.ParseDate(date, uc.timezone); err != nil {
			return doctor.DayAvailability{}, domain.ErrInvalidDate
		}
	}

	doc, err := uc.doctors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, doctor.ErrNotFound) {
			return doctor.DayAvailability{}, doctor.ErrNotFound
		}
		return doctor.DayAvailability{}, err
	}

	taken, err := uc.repo.ListBookedTimes(ctx, doc.ID, day)
	if err != nil {
		return doctor.DayAvailability{}, err
	}

	return doctor.BuildDay(doctor.DayAvailability{
		DoctorID:  doc.ID.String(),
		Date:      doctor.FormatDate(day),
		Available: doc.Available,
	}, taken), nil
}
