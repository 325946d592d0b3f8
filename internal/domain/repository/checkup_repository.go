package repository

import (
	"go-healthcare-portal/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CheckupRepository interface {
	Create(db *gorm.DB, checkup *entity.Checkup) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Checkup, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Checkup, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Checkup, error)
	// UpdateStatus transitions an upcoming checkup to a terminal status.
	// Returns affected rows: 1 = transitioned, 0 = already terminal.
	UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.CheckupStatus) (int64, error)
}
