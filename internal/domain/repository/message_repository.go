package repository

import (
	"go-healthcare-portal/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(db *gorm.DB, message *entity.Message) error
	// FindThread returns both directions of the conversation between a and b,
	// oldest first.
	FindThread(db *gorm.DB, a, b uuid.UUID) ([]entity.Message, error)
}
