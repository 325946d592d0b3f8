package handler

import (
	"errors"
	"net/http"
	"strconv"

	"go-healthcare-portal/internal/authz"
	"go-healthcare-portal/internal/usecase"
	"go-healthcare-portal/pkg/response"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{auditLogUsecase: auditLogUsecase}
}

// GetAuditLogs returns the most recent audit entries (admin only)
func (h *AuditLogHandler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	logs, err := h.auditLogUsecase.GetRecent(r.Context(), limit)
	if err != nil {
		switch {
		case errors.Is(err, authz.ErrForbidden):
			response.Forbidden(w, "")
		default:
			response.InternalServerError(w, "Failed to get audit logs")
		}
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", logs)
}
