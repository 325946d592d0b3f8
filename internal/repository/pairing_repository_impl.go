package repository

import (
	"errors"

	"go-healthcare-portal/internal/domain/entity"
	domainRepo "go-healthcare-portal/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type pairingRepository struct{}

func NewPairingRepository() domainRepo.PairingRepository {
	return &pairingRepository{}
}

// Link relies on the unique (doctor_id, patient_id) index rather than a
// read-then-insert check, so concurrent duplicate links collapse to one row.
func (r *pairingRepository) Link(db *gorm.DB, link *entity.PairingLink) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "doctor_id"}, {Name: "patient_id"}},
		DoNothing: true,
	}).Create(link).Error
}

func (r *pairingRepository) Exists(db *gorm.DB, doctorID, patientID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&entity.PairingLink{}).
		Where("doctor_id = ? AND patient_id = ?", doctorID, patientID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *pairingRepository) FindPatientsOf(db *gorm.DB, doctorID uuid.UUID) ([]entity.User, error) {
	var patients []entity.User
	err := db.
		Joins("JOIN doctor_patient_links ON doctor_patient_links.patient_id = users.id").
		Where("doctor_patient_links.doctor_id = ?", doctorID).
		Order("users.full_name ASC").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *pairingRepository) FindDoctorOf(db *gorm.DB, patientID uuid.UUID) (*entity.User, error) {
	var doctor entity.User
	err := db.
		Joins("JOIN doctor_patient_links ON doctor_patient_links.doctor_id = users.id").
		Where("doctor_patient_links.patient_id = ?", patientID).
		Order("doctor_patient_links.created_at ASC").
		First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}
