package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HealthLog is one immutable daily-metrics entry owned by a patient.
// There is no uniqueness constraint on (user_id, date): logging twice on the
// same day creates two rows, and corrections are new entries.
type HealthLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_health_logs_user_date" json:"user_id"`
	Date       time.Time `gorm:"type:date;not null;index:idx_health_logs_user_date,sort:desc" json:"date"`
	Steps      int       `gorm:"not null" json:"steps"`
	WaterML    int       `gorm:"column:water_ml;not null" json:"water_ml"`
	HeartRate  int       `gorm:"not null" json:"heart_rate"`
	SleepHours float64   `gorm:"type:numeric(3,1);not null" json:"sleep_hours"`
	Notes      string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (HealthLog) TableName() string {
	return "health_logs"
}

func (l *HealthLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
