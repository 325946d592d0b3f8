package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCheckupRequest struct {
	PatientID uuid.UUID `json:"patient_id" validate:"required"`
	Date      string    `json:"date" validate:"required"` // RFC 3339 timestamp
	Purpose   string    `json:"purpose" validate:"required"`
	Notes     string    `json:"notes" validate:"omitempty"`
}

type UpdateCheckupStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed cancelled"`
}

type CheckupResponse struct {
	ID        uuid.UUID     `json:"id"`
	DoctorID  uuid.UUID     `json:"doctor_id"`
	PatientID uuid.UUID     `json:"patient_id"`
	Date      time.Time     `json:"date"`
	Purpose   string        `json:"purpose"`
	Status    string        `json:"status"`
	Notes     string        `json:"notes,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	Doctor    *UserResponse `json:"doctor,omitempty"`
	Patient   *UserResponse `json:"patient,omitempty"`
}

type CheckupListResponse struct {
	Checkups []CheckupResponse `json:"checkups"`
	Total    int               `json:"total"`
}
