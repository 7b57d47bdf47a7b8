package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_appointments_user_date,priority:1" json:"user"`
	User   *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	DoctorID uuid.UUID `gorm:"type:uuid;not null;index:idx_appointments_doctor_date,priority:1" json:"doctorId"`
	Doctor   *Doctor   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"doctor,omitempty"`

	// DoctorName is a snapshot taken at booking time.
	DoctorName string `gorm:"size:100;not null" json:"doctorName"`

	Date time.Time `gorm:"type:date;not null;index:idx_appointments_user_date,priority:2,sort:desc;index:idx_appointments_doctor_date,priority:2" json:"date"`
	Time string    `gorm:"size:20;not null" json:"time"`

	Type   string `gorm:"size:20;not null;default:'consultation'" json:"type"`
	Status string `gorm:"size:20;not null;default:'pending'" json:"status"`

	Symptoms string `gorm:"type:text" json:"symptoms"`
	Notes    string `gorm:"type:text" json:"notes"`

	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Appointment) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
