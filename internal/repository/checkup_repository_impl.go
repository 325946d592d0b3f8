package repository

import (
	"errors"

	"go-healthcare-portal/internal/domain/entity"
	domainRepo "go-healthcare-portal/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type checkupRepository struct{}

func NewCheckupRepository() domainRepo.CheckupRepository {
	return &checkupRepository{}
}

func (r *checkupRepository) Create(db *gorm.DB, checkup *entity.Checkup) error {
	return db.Create(checkup).Error
}

func (r *checkupRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Checkup, error) {
	var checkup entity.Checkup
	err := db.Where("id = ?", id).First(&checkup).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &checkup, nil
}

func (r *checkupRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Checkup, error) {
	checkups := make([]entity.Checkup, 0)
	err := db.Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Order("date ASC").
		Find(&checkups).Error
	if err != nil {
		return nil, err
	}
	return checkups, nil
}

func (r *checkupRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Checkup, error) {
	checkups := make([]entity.Checkup, 0)
	err := db.Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("date ASC").
		Find(&checkups).Error
	if err != nil {
		return nil, err
	}
	return checkups, nil
}

// UpdateStatus atomically transitions a checkup ONLY while it is upcoming.
// Terminal states have no outgoing transitions; a zero affected-row count
// tells the caller the row was already completed or cancelled.
func (r *checkupRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.CheckupStatus) (int64, error) {
	result := db.Model(&entity.Checkup{}).
		Where("id = ? AND status = ?", id, entity.CheckupStatusUpcoming).
		Update("status", status)
	return result.RowsAffected, result.Error
}
