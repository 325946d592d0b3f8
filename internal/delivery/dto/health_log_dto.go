package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateHealthLogRequest struct {
	Date       string  `json:"date" validate:"required"` // Format: YYYY-MM-DD
	Steps      int     `json:"steps" validate:"gte=0"`
	WaterML    int     `json:"water_ml" validate:"gte=0"`
	HeartRate  int     `json:"heart_rate" validate:"gte=0"`
	SleepHours float64 `json:"sleep_hours" validate:"gte=0,lte=24"`
	Notes      string  `json:"notes" validate:"omitempty"`
}

type HealthLogResponse struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Date       string    `json:"date"`
	Steps      int       `json:"steps"`
	WaterML    int       `json:"water_ml"`
	HeartRate  int       `json:"heart_rate"`
	SleepHours float64   `json:"sleep_hours"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// HealthAlert is a presentation-layer derivation over the latest log entry.
// Alerts are recomputed on every read and never stored.
type HealthAlert struct {
	Metric  string `json:"metric"`
	Level   string `json:"level"` // "warning" or "info"
	Message string `json:"message"`
}

type HealthLogListResponse struct {
	Logs   []HealthLogResponse `json:"logs"`
	Alerts []HealthAlert       `json:"alerts"`
	Total  int                 `json:"total"`
}
