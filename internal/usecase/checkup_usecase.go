package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-healthcare-portal/config"
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

var (
	ErrCheckupNotFound    = errors.New("checkup not found")
	ErrCheckupFinalized   = errors.New("checkup is already completed or cancelled")
	ErrEmptyPurpose       = errors.New("purpose must not be empty")
	ErrInvalidCheckupDate = errors.New("invalid date format, use RFC 3339")
	ErrInvalidStatus      = errors.New("status must be completed or cancelled")
)

type CheckupUsecase interface {
	Create(ctx context.Context, req *dto.CreateCheckupRequest) (*dto.CheckupResponse, error)
	ListForPrincipal(ctx context.Context) (*dto.CheckupListResponse, error)
	SetStatus(ctx context.Context, checkupID uuid.UUID, req *dto.UpdateCheckupStatusRequest) (*dto.CheckupResponse, error)
}

type checkupUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	policy       config.PolicyConfig
	checkupRepo  repository.CheckupRepository
	userRepo     repository.UserRepository
	pairingRepo  repository.PairingRepository
	auditService service.AuditService
}

func NewCheckupUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	policy config.PolicyConfig,
	checkupRepo repository.CheckupRepository,
	userRepo repository.UserRepository,
	pairingRepo repository.PairingRepository,
	auditService service.AuditService,
) CheckupUsecase {
	return &checkupUsecase{
		db:           db,
		log:          log,
		policy:       policy,
		checkupRepo:  checkupRepo,
		userRepo:     userRepo,
		pairingRepo:  pairingRepo,
		auditService: auditService,
	}
}

// Create schedules a checkup authored by the calling doctor. Status always
// starts at upcoming regardless of the payload.
func (u *checkupUsecase) Create(ctx context.Context, req *dto.CreateCheckupRequest) (*dto.CheckupResponse, error) {
	principal, ok := authz.PrincipalFromContext(ctx)
	if !ok {
		return nil, authz.ErrUnauthenticated
	}
	if principal.Role != authz.RoleDoctor {
		return nil, authz.ErrForbidden
	}

	purpose := strings.TrimSpace(req.Purpose)
	if purpose == "" {
		return nil, ErrEmptyPurpose
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return nil, ErrInvalidCheckupDate
	}

	db := u.db.WithContext(ctx)

	patient, err := u.userRepo.FindByID(db, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	if patient.RoleID != entity.RoleIDPatient {
		return nil, ErrPatientRoleRequired
	}

	if u.policy.RequirePairingForCheckups {
		paired, err := u.pairingRepo.Exists(db, principal.ID, req.PatientID)
		if err != nil {
			u.log.Warnf("Failed to check pairing for doctor %s: %+v", principal.ID, err)
			return nil, err
		}
		if !paired {
			return nil, ErrNotPaired
		}
	}

	checkup := &entity.Checkup{
		DoctorID:  principal.ID,
		PatientID: req.PatientID,
		Date:      date,
		Purpose:   purpose,
		Status:    entity.CheckupStatusUpcoming,
		Notes:     req.Notes,
	}

	tx := db.Begin()
	defer tx.Rollback()

	if err := u.checkupRepo.Create(tx, checkup); err != nil {
		u.log.Warnf("Failed to create checkup: %+v", err)
		return nil, err
	}

	u.auditService.Record(tx, &principal.ID, entity.AuditActionCheckupCreate, entity.JSON{
		"checkup_id": checkup.ID.String(),
		"patient_id": req.PatientID.String(),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Checkup created: id=%s, doctor=%s, patient=%s", checkup.ID, principal.ID, req.PatientID)
	return converter.CheckupToResponse(checkup), nil
}

// ListForPrincipal returns the checkups visible to the caller: authored ones
// for a doctor, addressed ones for a patient, and nothing for anyone else.
func (u *checkupUsecase) ListForPrincipal(ctx context.Context) (*dto.CheckupListResponse, error) {
	principal, ok := authz.PrincipalFromContext(ctx)
	if !ok {
		return nil, authz.ErrUnauthenticated
	}

	db := u.db.WithContext(ctx)

	var checkups []entity.Checkup
	var err error
	switch principal.Role {
	case authz.RoleDoctor:
		checkups, err = u.checkupRepo.FindByDoctorID(db, principal.ID)
	case authz.RolePatient:
		checkups, err = u.checkupRepo.FindByPatientID(db, principal.ID)
	default:
		checkups = []entity.Checkup{}
	}
	if err != nil {
		u.log.Warnf("Failed to list checkups for %s: %+v", principal.ID, err)
		return nil, err
	}

	return &dto.CheckupListResponse{
		Checkups: converter.CheckupsToResponses(checkups),
		Total:    len(checkups),
	}, nil
}

// SetStatus transitions an upcoming checkup to completed or cancelled.
// Only the authoring doctor may transition; terminal states are final and a
// repeated call is rejected with ErrCheckupFinalized. The update is a single
// conditional UPDATE, so two racing transitions cannot both win.
func (u *checkupUsecase) SetStatus(ctx context.Context, checkupID uuid.UUID, req *dto.UpdateCheckupStatusRequest) (*dto.CheckupResponse, error) {
	principal, ok := authz.PrincipalFromContext(ctx)
	if !ok {
		return nil, authz.ErrUnauthenticated
	}

	status := entity.CheckupStatus(req.Status)
	if !status.Valid() || !status.Terminal() {
		return nil, ErrInvalidStatus
	}

	db := u.db.WithContext(ctx)

	checkup, err := u.checkupRepo.FindByID(db, checkupID)
	if err != nil {
		u.log.Warnf("Failed to find checkup %s: %+v", checkupID, err)
		return nil, err
	}
	if checkup == nil {
		return nil, ErrCheckupNotFound
	}

	record := authz.CheckupRecord{DoctorID: checkup.DoctorID, PatientID: checkup.PatientID}
	if !authz.Decide(principal, authz.ActionRead, record).Allowed() {
		// An outsider learns nothing about the row's existence.
		return nil, ErrCheckupNotFound
	}

	// Transitions fire only via explicit doctor action; the named patient has
	// read visibility but no say over the state machine.
	if principal.ID != checkup.DoctorID {
		return nil, authz.ErrForbidden
	}

	tx := db.Begin()
	defer tx.Rollback()

	affected, err := u.checkupRepo.UpdateStatus(tx, checkupID, status)
	if err != nil {
		u.log.Warnf("Failed to update checkup %s status: %+v", checkupID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrCheckupFinalized
	}

	u.auditService.Record(tx, &principal.ID, entity.AuditActionCheckupStatus, entity.JSON{
		"checkup_id": checkupID.String(),
		"status":     req.Status,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	checkup.Status = status
	u.log.Infof("Checkup status updated: id=%s, status=%s", checkupID, status)
	return converter.CheckupToResponse(checkup), nil
}
