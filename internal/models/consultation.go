package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MedicineDose is embedded in a consultation; it has no identity of its own.
type MedicineDose struct {
	Name     string `json:"name"`
	Dosage   string `json:"dosage"`
	Timing   string `json:"timing"`
	Duration string `json:"duration"`
}

type Consultation struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserID *uuid.UUID `gorm:"type:uuid;index:idx_consultations_user_created,priority:1" json:"user"`

	Symptoms            string         `gorm:"type:text;not null" json:"symptoms"`
	AyurvedicMedicines  []MedicineDose `gorm:"type:jsonb;serializer:json" json:"ayurvedicMedicines"`
	AllopathicMedicines []MedicineDose `gorm:"type:jsonb;serializer:json" json:"allopathicMedicines"`
	AIAnalysis          string         `gorm:"type:text" json:"aiAnalysis"`
	Severity            string         `gorm:"size:20" json:"severity"`
	SeekEmergencyCare   bool           `json:"seekEmergencyCare"`
	IsGuest             bool           `gorm:"column:is_guest_consultation" json:"isGuestConsultation"`

	CreatedAt time.Time `gorm:"index:idx_consultations_user_created,priority:2,sort:desc" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Consultation) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
