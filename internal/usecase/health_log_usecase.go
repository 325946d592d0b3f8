package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"go-healthcare-portal/internal/authz"
	"go-healthcare-portal/internal/converter"
	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/domain/entity"
	"go-healthcare-portal/internal/domain/repository"
	"go-healthcare-portal/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrInvalidLogDate = errors.New("invalid date format, use YYYY-MM-DD")

// DashboardHistoryLimit is the number of recent entries a doctor's dashboard
// summary requests.
const DashboardHistoryLimit = 7

type HealthLogUsecase interface {
	Append(ctx context.Context, req *dto.CreateHealthLogRequest) (*dto.HealthLogResponse, error)
	History(ctx context.Context, patientID uuid.UUID, limit int) (*dto.HealthLogListResponse, error)
}

type healthLogUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	healthLogRepo repository.HealthLogRepository
	pairingRepo   repository.PairingRepository
	auditService  service.AuditService
}

func NewHealthLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	healthLogRepo repository.HealthLogRepository,
	pairingRepo repository.PairingRepository,
	auditService service.AuditService,
) HealthLogUsecase {
	return &healthLogUsecase{
		db:            db,
		log:           log,
		healthLogRepo: healthLogRepo,
		pairingRepo:   pairingRepo,
		auditService:  auditService,
	}
}

// Append writes a new immutable log row for the calling patient. A second
// entry on the same date is a second row, never a merge; corrections are new
// entries.
func (u *healthLogUsecase) Append(ctx context.Context, req *dto.CreateHealthLogRequest) (*dto.HealthLogResponse, error) {
	principal, ok := authz.PrincipalFromContext(ctx)
	if !ok {
		return nil, authz.ErrUnauthenticated
	}

	if !authz.Decide(principal, authz.ActionWrite, authz.HealthLogRecord{OwnerID: principal.ID}).Allowed() {
		return nil, authz.ErrForbidden
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidLogDate
	}

	log := &entity.HealthLog{
		UserID:     principal.ID,
		Date:       date,
		Steps:      req.Steps,
		WaterML:    req.WaterML,
		HeartRate:  req.HeartRate,
		SleepHours: math.Round(req.SleepHours*10) / 10,
		Notes:      req.Notes,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.healthLogRepo.Create(tx, log); err != nil {
		u.log.Warnf("Failed to append health log for %s: %+v", principal.ID, err)
		return nil, err
	}

	u.auditService.Record(tx, &principal.ID, entity.AuditActionHealthLogEntry, entity.JSON{
		"log_id": log.ID.String(),
		"date":   req.Date,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.HealthLogToResponse(log), nil
}

// History returns a patient's log rows, newest date first, plus the derived
// alerts for the latest entry. The policy engine gates visibility: the owner
// always sees their own rows, a paired doctor sees read-only history, and
// everyone else gets an empty result so existence never leaks.
func (u *healthLogUsecase) History(ctx context.Context, patientID uuid.UUID, limit int) (*dto.HealthLogListResponse, error) {
	principal, ok := authz.PrincipalFromContext(ctx)
	if !ok {
		return nil, authz.ErrUnauthenticated
	}

	db := u.db.WithContext(ctx)

	paired := false
	if principal.ID != patientID && principal.Role == authz.RoleDoctor {
		var err error
		paired, err = u.pairingRepo.Exists(db, principal.ID, patientID)
		if err != nil {
			u.log.Warnf("Failed to check pairing for doctor %s: %+v", principal.ID, err)
			return nil, err
		}
	}

	record := authz.HealthLogRecord{OwnerID: patientID, ViewerPaired: paired}
	if !authz.Decide(principal, authz.ActionRead, record).Allowed() {
		// Fail closed: a denied read is indistinguishable from no data.
		return &dto.HealthLogListResponse{
			Logs:   []dto.HealthLogResponse{},
			Alerts: []dto.HealthAlert{},
		}, nil
	}

	logs, err := u.healthLogRepo.FindByUserID(db, patientID, limit)
	if err != nil {
		u.log.Warnf("Failed to find health logs for %s: %+v", patientID, err)
		return nil, err
	}

	var latest *entity.HealthLog
	if len(logs) > 0 {
		latest = &logs[0]
	}

	alerts := DeriveHealthAlerts(latest)
	if alerts == nil {
		alerts = []dto.HealthAlert{}
	}

	return &dto.HealthLogListResponse{
		Logs:   converter.HealthLogsToResponses(logs),
		Alerts: alerts,
		Total:  len(logs),
	}, nil
}
