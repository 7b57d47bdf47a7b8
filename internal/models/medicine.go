package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Medicine is a catalog entry, unrelated to the doses embedded in consultations.
type Medicine struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name         string  `gorm:"size:255;not null;index" json:"name"`
	Price        float64 `gorm:"default:0" json:"price"`
	Manufacturer string  `gorm:"size:255" json:"manufacturer"`
	Type         string  `gorm:"size:50" json:"type"`
	PackSize     string  `gorm:"size:100" json:"packSize"`
	Composition  string  `gorm:"type:text" json:"composition"`
	Description  string  `gorm:"type:text" json:"description"`

	SideEffects    pq.StringArray `gorm:"type:text[]" json:"sideEffects"`
	Interactions   map[string]any `gorm:"type:jsonb;serializer:json" json:"interactions"`
	IsDiscontinued bool           `gorm:"default:false" json:"isDiscontinued"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *Medicine) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
