package repository

import (
	"go-healthcare-portal/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HealthLogRepository interface {
	// Create appends a new immutable row. No update or delete exists.
	Create(db *gorm.DB, log *entity.HealthLog) error
	// FindByUserID returns rows newest-date first. limit <= 0 means all.
	FindByUserID(db *gorm.DB, userID uuid.UUID, limit int) ([]entity.HealthLog, error)
}
