package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/care-scheduler/internal/metrics"
)

type Event struct {
	UserID   *uuid.UUID
	Action   string
	Entity   string
	EntityID *uuid.UUID
	Metadata any
}

// Auditor accepts events without blocking the caller.
type Auditor interface {
	Dispatch(ev Event)
}

type Nop struct{}

func (Nop) Dispatch(Event) {}

type Dispatcher struct {
	recorder Recorder
	log      *zap.Logger
	queue    chan Event
	done     chan struct{}

	// mu guards closed; senders hold it for reading so Close cannot close
	// the queue under them.
	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(recorder Recorder, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		recorder: recorder,
		log:      log,
		queue:    make(chan Event, 100),
		done:     make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.recorder.Record(ctx, ev); err != nil {
			d.log.Warn("audit write failed",
				zap.String("action", ev.Action),
				zap.Error(err),
			)
		}
		cancel()
	}
}

// Dispatch enqueues ev; when the queue is full the event is dropped so the
// request path never waits on audit storage.
// Events arriving after Close are dropped.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		metrics.AuditDropped.Inc()
		d.log.Warn("audit dispatcher closed, dropping event", zap.String("action", ev.Action))
		return
	}

	select {
	case d.queue <- ev:
	default:
		metrics.AuditDropped.Inc()
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close stops accepting events and waits for queued ones to be written.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
}

var _ Auditor = (*Dispatcher)(nil)
