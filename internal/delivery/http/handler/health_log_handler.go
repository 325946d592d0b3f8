package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go-healthcare-portal/internal/authz"
	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/usecase"
	"go-healthcare-portal/pkg/response"
	"go-healthcare-portal/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type HealthLogHandler struct {
	healthLogUsecase usecase.HealthLogUsecase
	validator        *validator.CustomValidator
}

func NewHealthLogHandler(healthLogUsecase usecase.HealthLogUsecase, validator *validator.CustomValidator) *HealthLogHandler {
	return &HealthLogHandler{
		healthLogUsecase: healthLogUsecase,
		validator:        validator,
	}
}

// CreateHealthLog appends a daily metrics entry for the calling patient
func (h *HealthLogHandler) CreateHealthLog(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateHealthLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	log, err := h.healthLogUsecase.Append(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidLogDate):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, authz.ErrForbidden):
			response.Forbidden(w, "")
		default:
			response.InternalServerError(w, "Failed to create health log")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Health log created successfully", log)
}

// GetMyHealthLogs returns the calling patient's own history with alerts
func (h *HealthLogHandler) GetMyHealthLogs(w http.ResponseWriter, r *http.Request) {
	principal, ok := authz.PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	logs, err := h.healthLogUsecase.History(r.Context(), principal.ID, parseLimit(r))
	if err != nil {
		response.InternalServerError(w, "Failed to get health logs")
		return
	}

	response.Success(w, http.StatusOK, "Health logs retrieved successfully", logs)
}

// GetPatientHealthLogs returns a paired patient's history for a doctor.
// An unpaired doctor receives an empty result, not an error.
func (h *HealthLogHandler) GetPatientHealthLogs(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient id", nil)
		return
	}

	logs, err := h.healthLogUsecase.History(r.Context(), patientID, parseLimit(r))
	if err != nil {
		response.InternalServerError(w, "Failed to get health logs")
		return
	}

	response.Success(w, http.StatusOK, "Health logs retrieved successfully", logs)
}

func parseLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
