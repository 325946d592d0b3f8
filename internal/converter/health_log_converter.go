package converter

import (
	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/domain/entity"
)

func HealthLogToResponse(log *entity.HealthLog) *dto.HealthLogResponse {
	if log == nil {
		return nil
	}

	return &dto.HealthLogResponse{
		ID:         log.ID,
		UserID:     log.UserID,
		Date:       log.Date.Format("2006-01-02"),
		Steps:      log.Steps,
		WaterML:    log.WaterML,
		HeartRate:  log.HeartRate,
		SleepHours: log.SleepHours,
		Notes:      log.Notes,
		CreatedAt:  log.CreatedAt,
	}
}

func HealthLogsToResponses(logs []entity.HealthLog) []dto.HealthLogResponse {
	responses := make([]dto.HealthLogResponse, len(logs))
	for i := range logs {
		responses[i] = *HealthLogToResponse(&logs[i])
	}
	return responses
}
