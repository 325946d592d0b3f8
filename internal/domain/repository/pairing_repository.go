package repository

import (
	"go-healthcare-portal/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PairingRepository is the single source of truth for the doctor-patient
// assignment relation. No other component may infer pairing on its own.
type PairingRepository interface {
	// Link creates the pairing if absent. The unique (doctor_id, patient_id)
	// index makes it idempotent; a duplicate insert is a no-op.
	Link(db *gorm.DB, link *entity.PairingLink) error
	Exists(db *gorm.DB, doctorID, patientID uuid.UUID) (bool, error)
	FindPatientsOf(db *gorm.DB, doctorID uuid.UUID) ([]entity.User, error)
	FindDoctorOf(db *gorm.DB, patientID uuid.UUID) (*entity.User, error)
}
