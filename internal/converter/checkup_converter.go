package converter

import (
	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/domain/entity"

	"github.com/google/uuid"
)

// CheckupToResponse converts a Checkup entity; preloaded doctor/patient
// records are included when present.
func CheckupToResponse(checkup *entity.Checkup) *dto.CheckupResponse {
	if checkup == nil {
		return nil
	}

	response := &dto.CheckupResponse{
		ID:        checkup.ID,
		DoctorID:  checkup.DoctorID,
		PatientID: checkup.PatientID,
		Date:      checkup.Date,
		Purpose:   checkup.Purpose,
		Status:    string(checkup.Status),
		Notes:     checkup.Notes,
		CreatedAt: checkup.CreatedAt,
	}

	if checkup.Doctor.ID != uuid.Nil {
		response.Doctor = UserToResponse(&checkup.Doctor)
	}
	if checkup.Patient.ID != uuid.Nil {
		response.Patient = UserToResponse(&checkup.Patient)
	}

	return response
}

func CheckupsToResponses(checkups []entity.Checkup) []dto.CheckupResponse {
	responses := make([]dto.CheckupResponse, len(checkups))
	for i := range checkups {
		responses[i] = *CheckupToResponse(&checkups[i])
	}
	return responses
}
