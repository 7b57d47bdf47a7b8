package routes

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	"github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/domain/consultation"
	"github.com/BruksfildServices01/care-scheduler/internal/domain/doctor"
	"github.com/BruksfildServices01/care-scheduler/internal/domain/medicine"
	"github.com/BruksfildServices01/care-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

// store is a single in-memory database shared by every fake repository.
type store struct {
	mu            sync.Mutex
	users         map[uuid.UUID]models.User
	doctors       []models.Doctor
	appointments  map[uuid.UUID]models.Appointment
	consultations []models.Consultation
	medicines     []models.Medicine
	counters      map[string]int64
}

func newStore() *store {
	return &store{
		users:        map[uuid.UUID]models.User{},
		appointments: map[uuid.UUID]models.Appointment{},
		counters:     map[string]int64{},
	}
}

// -------- users --------

type userRepo struct{ s *store }

func (r userRepo) Create(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.users {
		if x.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	u.PasswordHash = ""
	return &u, nil
}

func (r userRepo) FindByEmailWithPassword(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (r userRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmailWithPassword(ctx, email)
	return err == nil, nil
}

func (r userRepo) UpdateProfile(ctx context.Context, id uuid.UUID, name, phone string) (*models.User, error) {
	r.s.mu.Lock()
	u, ok := r.s.users[id]
	if ok {
		if name != "" {
			u.Name = name
		}
		if phone != "" {
			u.Phone = phone
		}
		r.s.users[id] = u
	}
	r.s.mu.Unlock()
	if !ok {
		return nil, user.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// -------- doctors --------

type doctorRepo struct{ s *store }

func (r doctorRepo) List(_ context.Context, f doctor.Filter) ([]models.Doctor, error) {
	var out []models.Doctor
	for i := range r.s.doctors {
		if f.Matches(&r.s.doctors[i]) {
			out = append(out, r.s.doctors[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	return out, nil
}

func (r doctorRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Doctor, error) {
	for i := range r.s.doctors {
		if r.s.doctors[i].ID == id {
			d := r.s.doctors[i]
			return &d, nil
		}
	}
	return nil, doctor.ErrNotFound
}

func (r doctorRepo) ListSpecialties(context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, d := range r.s.doctors {
		if !seen[d.Specialty] {
			seen[d.Specialty] = true
			out = append(out, d.Specialty)
		}
	}
	sort.Strings(out)
	return out, nil
}

// -------- appointments --------

type appointmentRepo struct{ s *store }

func (r appointmentRepo) active(doctorID uuid.UUID, date time.Time, slot string, exclude uuid.UUID) bool {
	for _, a := range r.s.appointments {
		if a.ID != exclude && a.DoctorID == doctorID && a.Date.Equal(date) && a.Time == slot &&
			appointment.Status(a.Status).IsActive() {
			return true
		}
	}
	return false
}

func (r appointmentRepo) Create(_ context.Context, ap *models.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.active(ap.DoctorID, ap.Date, ap.Time, uuid.Nil) {
		return appointment.ErrSlotTaken
	}
	ap.ID = uuid.New()
	ap.CreatedAt = time.Now()
	r.s.appointments[ap.ID] = *ap
	return nil
}

func (r appointmentRepo) SlotTaken(_ context.Context, doctorID uuid.UUID, date time.Time, slot string, exclude uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.active(doctorID, date, slot, exclude), nil
}

func (r appointmentRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]models.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.s.appointments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r appointmentRepo) GetForUser(_ context.Context, id, userID uuid.UUID) (*models.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.appointments[id]
	if !ok || a.UserID != userID {
		return nil, appointment.ErrNotFound
	}
	return &a, nil
}

func (r appointmentRepo) Update(_ context.Context, ap *models.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.appointments[ap.ID] = *ap
	return nil
}

func (r appointmentRepo) ListBookedTimes(_ context.Context, doctorID uuid.UUID, date time.Time) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []string
	for _, a := range r.s.appointments {
		if a.DoctorID == doctorID && a.Date.Equal(date) && appointment.Status(a.Status).IsActive() {
			out = append(out, a.Time)
		}
	}
	return out, nil
}

func (r appointmentRepo) ListActiveBefore(context.Context, time.Time, int) ([]models.Appointment, error) {
	return nil, nil
}

// -------- consultations --------

type consultationRepo struct{ s *store }

func (r consultationRepo) Create(_ context.Context, c *models.Consultation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	r.s.consultations = append(r.s.consultations, *c)
	return nil
}

func (r consultationRepo) ListForUser(_ context.Context, userID uuid.UUID, limit int) ([]models.Consultation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Consultation
	for i := len(r.s.consultations) - 1; i >= 0 && len(out) < limit; i-- {
		c := r.s.consultations[i]
		if c.UserID != nil && *c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r consultationRepo) GetForUser(_ context.Context, id, userID uuid.UUID) (*models.Consultation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.consultations {
		if c.ID == id && c.UserID != nil && *c.UserID == userID {
			return &c, nil
		}
	}
	return nil, consultation.ErrNotFound
}

// -------- medicines --------

type medicineRepo struct{ s *store }

func (r medicineRepo) Search(_ context.Context, q medicine.Query) ([]models.Medicine, int64, error) {
	var hits []models.Medicine
	needle := strings.ToLower(q.Text)
	for _, m := range r.s.medicines {
		if needle == "" ||
			strings.Contains(strings.ToLower(m.Name), needle) ||
			strings.Contains(strings.ToLower(m.Composition), needle) {
			hits = append(hits, m)
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Name < hits[j].Name })

	total := int64(len(hits))
	start := q.Offset()
	if start > len(hits) {
		start = len(hits)
	}
	end := start + q.Limit
	if end > len(hits) {
		end = len(hits)
	}
	return hits[start:end], total, nil
}

func (r medicineRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Medicine, error) {
	for _, m := range r.s.medicines {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, medicine.ErrNotFound
}

func (r medicineRepo) CreateBatch(_ context.Context, items []models.Medicine) error {
	r.s.medicines = append(r.s.medicines, items...)
	return nil
}

// -------- activity + rate limit store --------

type activityRepo struct{ s *store }

// List reports one registration event per user, honouring the action filter.
func (activityRepo) List(_ context.Context, userID uuid.UUID, q audit.Query) ([]models.AuditLog, int64, error) {
	if q.Action != "" && q.Action != "user_registered" {
		return nil, 0, nil
	}
	uid := userID
	return []models.AuditLog{{
		ID: 1, UserID: &uid, Action: "user_registered", Entity: "user", EntityID: &uid,
		CreatedAt: time.Now(),
	}}, 1, nil
}

type limitStore struct{ s *store }

func (l limitStore) Get(context.Context, string) ([]byte, error)                   { return nil, nil }
func (l limitStore) Set(context.Context, string, []byte, time.Duration) error      { return nil }
func (l limitStore) Delete(context.Context, ...string) error                       { return nil }
func (l limitStore) IncrWindow(_ context.Context, key string, w time.Duration) (int64, time.Duration, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	l.s.counters[key]++
	return l.s.counters[key], w, nil
}
