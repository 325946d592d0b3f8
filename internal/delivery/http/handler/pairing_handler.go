package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-healthcare-portal/internal/authz"
	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/usecase"
	"go-healthcare-portal/pkg/response"
	"go-healthcare-portal/pkg/validator"
)

type PairingHandler struct {
	pairingUsecase usecase.PairingUsecase
	validator      *validator.CustomValidator
}

func NewPairingHandler(pairingUsecase usecase.PairingUsecase, validator *validator.CustomValidator) *PairingHandler {
	return &PairingHandler{
		pairingUsecase: pairingUsecase,
		validator:      validator,
	}
}

// CreatePairing links a doctor and a patient (admin only)
func (h *PairingHandler) CreatePairing(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePairingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	pairing, err := h.pairingUsecase.CreatePairing(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrDoctorRoleRequired), errors.Is(err, usecase.ErrPatientRoleRequired):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, authz.ErrForbidden):
			response.Forbidden(w, "")
		default:
			response.InternalServerError(w, "Failed to create pairing")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Pairing created successfully", pairing)
}

// GetMyPatients lists the calling doctor's paired patients
func (h *PairingHandler) GetMyPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.pairingUsecase.GetMyPatients(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, authz.ErrForbidden):
			response.Forbidden(w, "")
		default:
			response.InternalServerError(w, "Failed to get patients")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

// GetMyDoctor returns the calling patient's assigned doctor
func (h *PairingHandler) GetMyDoctor(w http.ResponseWriter, r *http.Request) {
	doctor, err := h.pairingUsecase.GetMyDoctor(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNoDoctorAssigned):
			response.NotFound(w, "No doctor assigned")
		case errors.Is(err, authz.ErrForbidden):
			response.Forbidden(w, "")
		default:
			response.InternalServerError(w, "Failed to get doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}
