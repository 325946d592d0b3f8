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

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type CheckupHandler struct {
	checkupUsecase usecase.CheckupUsecase
	validator      *validator.CustomValidator
}

func NewCheckupHandler(checkupUsecase usecase.CheckupUsecase, validator *validator.CustomValidator) *CheckupHandler {
	return &CheckupHandler{
		checkupUsecase: checkupUsecase,
		validator:      validator,
	}
}

// CreateCheckup schedules a checkup authored by the calling doctor
func (h *CheckupHandler) CreateCheckup(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCheckupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	checkup, err := h.checkupUsecase.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyPurpose), errors.Is(err, usecase.ErrInvalidCheckupDate):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrPatientRoleRequired):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, usecase.ErrNotPaired), errors.Is(err, authz.ErrForbidden):
			response.Forbidden(w, "")
		default:
			response.InternalServerError(w, "Failed to create checkup")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Checkup created successfully", checkup)
}

// GetMyCheckups lists the caller's checkups, scoped by role
func (h *CheckupHandler) GetMyCheckups(w http.ResponseWriter, r *http.Request) {
	checkups, err := h.checkupUsecase.ListForPrincipal(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get checkups")
		return
	}

	response.Success(w, http.StatusOK, "Checkups retrieved successfully", checkups)
}

// UpdateCheckupStatus transitions a checkup to completed or cancelled
func (h *CheckupHandler) UpdateCheckupStatus(w http.ResponseWriter, r *http.Request) {
	checkupID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid checkup id", nil)
		return
	}

	var req dto.UpdateCheckupStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	checkup, err := h.checkupUsecase.SetStatus(r.Context(), checkupID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCheckupNotFound):
			response.NotFound(w, "Checkup not found")
		case errors.Is(err, usecase.ErrCheckupFinalized):
			response.Error(w, http.StatusConflict, err.Error(), nil)
		case errors.Is(err, usecase.ErrInvalidStatus):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, authz.ErrForbidden):
			response.Forbidden(w, "")
		default:
			response.InternalServerError(w, "Failed to update checkup status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Checkup status updated successfully", checkup)
}
