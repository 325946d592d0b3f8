package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckupStatus represents the status of a checkup
type CheckupStatus string

const (
	CheckupStatusUpcoming  CheckupStatus = "upcoming"
	CheckupStatusCompleted CheckupStatus = "completed"
	CheckupStatusCancelled CheckupStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s CheckupStatus) Valid() bool {
	switch s {
	case CheckupStatusUpcoming, CheckupStatusCompleted, CheckupStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s has no outgoing transitions.
func (s CheckupStatus) Terminal() bool {
	return s == CheckupStatusCompleted || s == CheckupStatusCancelled
}

// Checkup is a doctor-authored appointment visible to the named patient.
// Status moves forward only: upcoming -> completed or upcoming -> cancelled.
type Checkup struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	DoctorID  uuid.UUID     `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID uuid.UUID     `gorm:"type:uuid;not null;index:idx_checkups_patient_date" json:"patient_id"`
	Date      time.Time     `gorm:"not null;index:idx_checkups_patient_date" json:"date"`
	Purpose   string        `gorm:"type:text;not null" json:"purpose"`
	Status    CheckupStatus `gorm:"type:varchar(20);not null;default:'upcoming';index" json:"status"`
	Notes     string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Doctor  User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Checkup) TableName() string {
	return "checkups"
}

func (c *Checkup) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// IsUpcoming checks if the checkup can still transition.
func (c *Checkup) IsUpcoming() bool {
	return c.Status == CheckupStatusUpcoming
}
