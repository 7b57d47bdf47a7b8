package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/care-scheduler/internal/domain/doctor"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

// DoctorDirectory is a read-through cache in front of the doctor repository.
// Cache failures are logged and fall through to the wrapped repository.
type DoctorDirectory struct {
	next  doctor.Repository
	store Store
	ttl   time.Duration
	log   *zap.Logger
}

func NewDoctorDirectory(next doctor.Repository, store Store, ttl time.Duration, log *zap.Logger) *DoctorDirectory {
	return &DoctorDirectory{next: next, store: store, ttl: ttl, log: log}
}

// DoctorKeyPrefix is shared by every directory cache key.
const DoctorKeyPrefix = "doctors:"

func listKey(f doctor.Filter) string {
	f = f.Normalize()
	return fmt.Sprintf(DoctorKeyPrefix+"list:%s|%s|%s",
		strconv.Quote(f.Specialty),
		strconv.FormatBool(f.AvailableOnly),
		strconv.Quote(f.Search),
	)
}

const specialtiesKey = DoctorKeyPrefix + "specialties"

func doctorKey(id uuid.UUID) string {
	return DoctorKeyPrefix + "id:" + id.String()
}

func (d *DoctorDirectory) List(ctx context.Context, f doctor.Filter) ([]models.Doctor, error) {
	var out []models.Doctor
	if d.load(ctx, listKey(f), &out) {
		return out, nil
	}

	out, err := d.next.List(ctx, f)
	if err != nil {
		return nil, err
	}
	d.save(ctx, listKey(f), out)
	return out, nil
}

func (d *DoctorDirectory) GetByID(ctx context.Context, id uuid.UUID) (*models.Doctor, error) {
	var out models.Doctor
	if d.load(ctx, doctorKey(id), &out) {
		return &out, nil
	}

	doc, err := d.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d.save(ctx, doctorKey(id), doc)
	return doc, nil
}

func (d *DoctorDirectory) ListSpecialties(ctx context.Context) ([]string, error) {
	var out []string
	if d.load(ctx, specialtiesKey, &out) {
		return out, nil
	}

	out, err := d.next.ListSpecialties(ctx)
	if err != nil {
		return nil, err
	}
	d.save(ctx, specialtiesKey, out)
	return out, nil
}

// PrefixDeleter is implemented by stores that can drop a whole key range.
type PrefixDeleter interface {
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}

var ErrFlushUnsupported = errors.New("cache store cannot delete by prefix")

// Flush drops every cached directory read, filtered lists included, and
// returns how many keys went.
func (d *DoctorDirectory) Flush(ctx context.Context) (int, error) {
	pd, ok := d.store.(PrefixDeleter)
	if !ok {
		return 0, ErrFlushUnsupported
	}
	return pd.DeletePrefix(ctx, DoctorKeyPrefix)
}

func (d *DoctorDirectory) load(ctx context.Context, key string, dst any) bool {
	raw, err := d.store.Get(ctx, key)
	if err != nil {
		if err != ErrMiss {
			d.log.Warn("doctor cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		d.log.Warn("doctor cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (d *DoctorDirectory) save(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := d.store.Set(ctx, key, raw, d.ttl); err != nil {
		d.log.Warn("doctor cache write failed", zap.String("key", key), zap.Error(err))
	}
}

var _ doctor.Repository = (*DoctorDirectory)(nil)
