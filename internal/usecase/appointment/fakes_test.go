package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/domain/doctor"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

// memLedger mimics the gorm repository, including the active slot index.
type memLedger struct {
	mu   sync.Mutex
	rows map[uuid.UUID]models.Appointment
	docs map[uuid.UUID]*models.Doctor

	// hideConflicts makes SlotTaken lie, to exercise the storage check.
	hideConflicts bool
}

func newMemLedger() *memLedger {
	return &memLedger{
		rows: map[uuid.UUID]models.Appointment{},
		docs: map[uuid.UUID]*models.Doctor{},
	}
}

func (m *memLedger) clashes(ap *models.Appointment) bool {
	if !domain.Status(ap.Status).IsActive() {
		return false
	}
	for _, r := range m.rows {
		if r.ID != ap.ID && r.DoctorID == ap.DoctorID && r.Date.Equal(ap.Date) &&
			r.Time == ap.Time && domain.Status(r.Status).IsActive() {
			return true
		}
	}
	return false
}

func (m *memLedger) Create(_ context.Context, ap *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clashes(ap) {
		return domain.ErrSlotTaken
	}
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	ap.CreatedAt = time.Now()
	m.rows[ap.ID] = *ap
	return nil
}

func (m *memLedger) SlotTaken(_ context.Context, doctorID uuid.UUID, date time.Time, slot string, exclude uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hideConflicts {
		return false, nil
	}
	candidate := &models.Appointment{ID: exclude, DoctorID: doctorID, Date: date, Time: slot, Status: string(domain.StatusPending)}
	return m.clashes(candidate), nil
}

func (m *memLedger) ListForUser(_ context.Context, userID uuid.UUID) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, r := range m.rows {
		if r.UserID == userID {
			r.Doctor = m.docs[r.DoctorID]
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memLedger) GetForUser(_ context.Context, id, userID uuid.UUID) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok || r.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

func (m *memLedger) Update(_ context.Context, ap *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clashes(ap) {
		return domain.ErrSlotTaken
	}
	m.rows[ap.ID] = *ap
	return nil
}

func (m *memLedger) ListBookedTimes(_ context.Context, doctorID uuid.UUID, date time.Time) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, r := range m.rows {
		if r.DoctorID == doctorID && r.Date.Equal(date) && domain.Status(r.Status).IsActive() {
			out = append(out, r.Time)
		}
	}
	return out, nil
}

func (m *memLedger) ListActiveBefore(_ context.Context, day time.Time, limit int) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, r := range m.rows {
		if domain.Status(r.Status).IsActive() && r.Date.Before(day) {
			out = append(out, r)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memLedger) get(id uuid.UUID) models.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id]
}

// doctorRepo serves the doctors registered on the ledger.
type doctorRepo struct{ l *memLedger }

func (d doctorRepo) List(_ context.Context, f doctor.Filter) ([]models.Doctor, error) {
	var out []models.Doctor
	for _, doc := range d.l.docs {
		if f.Matches(doc) {
			out = append(out, *doc)
		}
	}
	return out, nil
}

func (d doctorRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Doctor, error) {
	doc, ok := d.l.docs[id]
	if !ok {
		return nil, doctor.ErrNotFound
	}
	return doc, nil
}

func (d doctorRepo) ListSpecialties(context.Context) ([]string, error) {
	return nil, nil
}

type recordingAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recordingAuditor) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingAuditor) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

var (
	_ domain.Repository = (*memLedger)(nil)
	_ doctor.Repository = doctorRepo{}
)
