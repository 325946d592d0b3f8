package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PairingLink is the doctor-patient assignment relation. All cross-role
// visibility derives from it. The (doctor_id, patient_id) pair is unique;
// links are created administratively and removed only by cascading deletion
// of either principal.
type PairingLink struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_doctor_patient" json:"doctor_id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_doctor_patient" json:"patient_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Doctor  User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (PairingLink) TableName() string {
	return "doctor_patient_links"
}

func (l *PairingLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
