package jobs

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/care-scheduler/internal/timezone"
)

// Completer finishes past appointments and reports how many it touched.
type Completer interface {
	Execute(ctx context.Context) (int, error)
}

// LedgerSweeper periodically completes confirmed appointments whose day
// has passed.
type LedgerSweeper struct {
	completer Completer
	every     time.Duration
	scheduler *gocron.Scheduler
	log       *zap.Logger
}

func NewLedgerSweeper(completer Completer, every time.Duration, tz string, log *zap.Logger) *LedgerSweeper {
	if every <= 0 {
		every = time.Hour
	}
	return &LedgerSweeper{
		completer: completer,
		every:     every,
		scheduler: gocron.NewScheduler(timezone.Location(tz)),
		log:       log,
	}
}

// Start runs a sweep right away and then every interval.
func (s *LedgerSweeper) Start() error {
	s.scheduler.SingletonModeAll()
	if _, err := s.scheduler.Every(s.every).Do(s.RunOnce); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	s.log.Info("ledger sweeper started", zap.Duration("every", s.every))
	return nil
}

func (s *LedgerSweeper) Stop() {
	s.scheduler.Stop()
}

func (s *LedgerSweeper) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	n, err := s.completer.Execute(ctx)
	if err != nil {
		s.log.Error("ledger sweep failed", zap.Int("completed", n), zap.Error(err))
		return
	}
	if n > 0 {
		s.log.Info("ledger sweep completed appointments", zap.Int("completed", n))
	}
}
