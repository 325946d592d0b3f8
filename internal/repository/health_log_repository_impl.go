package repository

import (
	"go-healthcare-portal/internal/domain/entity"
	domainRepo "go-healthcare-portal/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type healthLogRepository struct{}

func NewHealthLogRepository() domainRepo.HealthLogRepository {
	return &healthLogRepository{}
}

func (r *healthLogRepository) Create(db *gorm.DB, log *entity.HealthLog) error {
	return db.Create(log).Error
}

func (r *healthLogRepository) FindByUserID(db *gorm.DB, userID uuid.UUID, limit int) ([]entity.HealthLog, error) {
	logs := make([]entity.HealthLog, 0)
	query := db.
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
