package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/metrics"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
	"github.com/BruksfildServices01/care-scheduler/internal/timezone"
)

const sweepBatch = 200

// CompletePastAppointments completes every appointment dated before today
// that was still held. Pending bookings are confirmed on the way, so the
// status machine is never skipped.
type CompletePastAppointments struct {
	repo     domain.Repository
	audit    audit.Auditor
	timezone string
	log      *zap.Logger
}

func NewCompletePastAppointments(
	repo domain.Repository,
	auditor audit.Auditor,
	tz string,
	log *zap.Logger,
) *CompletePastAppointments {
	return &CompletePastAppointments{
		repo:     repo,
		audit:    auditor,
		timezone: tz,
		log:      log,
	}
}

// Execute returns how many appointments were completed.
func (uc *CompletePastAppointments) Execute(ctx context.Context) (int, error) {
	today := timezone.Today(uc.timezone)
	done := 0

	for {
		batch, err := uc.repo.ListActiveBefore(ctx, today, sweepBatch)
		if err != nil {
			return done, err
		}

		progressed := 0
		for i := range batch {
			ap := &batch[i]
			from := ap.Status
			if err := settle(ap, timezone.NowIn(uc.timezone)); err != nil {
				uc.log.Warn("sweep skipped appointment", zap.String("id", ap.ID.String()), zap.Error(err))
				continue
			}
			if err := uc.repo.Update(ctx, ap); err != nil {
				return done, err
			}

			uc.audit.Dispatch(audit.Event{
				UserID:   &ap.UserID,
				Action:   "appointment_completed",
				Entity:   "appointment",
				EntityID: &ap.ID,
				Metadata: map[string]string{"from": from},
			})
			metrics.AppointmentsSwept.Inc()
			done++
			progressed++
		}

		if len(batch) < sweepBatch || progressed == 0 {
			return done, nil
		}
	}
}

func settle(ap *models.Appointment, now time.Time) error {
	if domain.Status(ap.Status) == domain.StatusPending {
		if err := domain.Confirm(ap); err != nil {
			return err
		}
	}
	return domain.Complete(ap, now)
}
