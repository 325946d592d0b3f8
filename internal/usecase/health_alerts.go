package usecase

import (
	"fmt"

	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/domain/entity"
)

// Alert thresholds over a patient's latest log entry.
const (
	alertHeartRateMax  = 100
	alertSleepHoursMin = 6.0
	alertWaterMLMin    = 1500
	alertStepsMin      = 5000
)

const (
	AlertLevelWarning = "warning"
	AlertLevelInfo    = "info"
)

// DeriveHealthAlerts recomputes the informational alerts for the most recent
// log entry. Alerts are a read-time derivation and are never persisted.
func DeriveHealthAlerts(latest *entity.HealthLog) []dto.HealthAlert {
	if latest == nil {
		return nil
	}

	alerts := make([]dto.HealthAlert, 0, 4)

	if latest.HeartRate > alertHeartRateMax {
		alerts = append(alerts, dto.HealthAlert{
			Metric:  "heart_rate",
			Level:   AlertLevelWarning,
			Message: fmt.Sprintf("Heart rate %d bpm is above %d", latest.HeartRate, alertHeartRateMax),
		})
	}
	if latest.SleepHours < alertSleepHoursMin {
		alerts = append(alerts, dto.HealthAlert{
			Metric:  "sleep_hours",
			Level:   AlertLevelWarning,
			Message: fmt.Sprintf("Sleep of %.1f hours is below %.0f", latest.SleepHours, alertSleepHoursMin),
		})
	}
	if latest.WaterML < alertWaterMLMin {
		alerts = append(alerts, dto.HealthAlert{
			Metric:  "water_ml",
			Level:   AlertLevelInfo,
			Message: fmt.Sprintf("Water intake %d ml is below %d", latest.WaterML, alertWaterMLMin),
		})
	}
	if latest.Steps < alertStepsMin {
		alerts = append(alerts, dto.HealthAlert{
			Metric:  "steps",
			Level:   AlertLevelInfo,
			Message: fmt.Sprintf("Step count %d is below %d", latest.Steps, alertStepsMin),
		})
	}

	return alerts
}
