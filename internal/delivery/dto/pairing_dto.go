package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePairingRequest struct {
	DoctorID  uuid.UUID `json:"doctor_id" validate:"required"`
	PatientID uuid.UUID `json:"patient_id" validate:"required"`
}

type PairingResponse struct {
	ID        uuid.UUID `json:"id"`
	DoctorID  uuid.UUID `json:"doctor_id"`
	PatientID uuid.UUID `json:"patient_id"`
	CreatedAt time.Time `json:"created_at"`
}

type PatientListResponse struct {
	Patients []UserResponse `json:"patients"`
	Total    int            `json:"total"`
}
