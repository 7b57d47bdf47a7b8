package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const DefaultDoctorImage = "https://images.pexels.com/photos/5327585/pexels-photo-5327585.jpeg?auto=compress&cs=tinysrgb&w=300"

// Rating, Available and ConsultationFee have no gorm default so that zero
// values (an unavailable doctor, a free consultation) are stored as given.
type Doctor struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name       string  `gorm:"size:100;not null" json:"name"`
	Specialty  string  `gorm:"size:100;not null;index" json:"specialty"`
	Rating     float64 `gorm:"not null;check:rating >= 0 AND rating <= 5" json:"rating"`
	Experience string  `gorm:"size:50;not null" json:"experience"`
	ImageURL   string  `gorm:"size:500" json:"image"`
	Available  bool    `gorm:"not null;index" json:"available"`

	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone string `gorm:"size:30;not null" json:"phone"`
	Bio   string `gorm:"type:text" json:"bio"`

	ConsultationFee float64        `gorm:"not null;check:consultation_fee >= 0" json:"consultationFee"`
	Languages       pq.StringArray `gorm:"type:text[]" json:"languages"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (d *Doctor) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.ImageURL == "" {
		d.ImageURL = DefaultDoctorImage
	}
	if len(d.Languages) == 0 {
		d.Languages = pq.StringArray{"English", "Hindi"}
	}
	return nil
}
