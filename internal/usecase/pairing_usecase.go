package usecase

import (
	"context"
	"errors"

	"go-healthcare-portal/internal/authz"
	"go-healthcare-portal/internal/converter"
	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/domain/entity"
	"go-healthcare-portal/internal/domain/repository"
	"go-healthcare-portal/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrDoctorRoleRequired  = errors.New("doctor_id does not reference a doctor account")
	ErrPatientRoleRequired = errors.New("patient_id does not reference a patient account")
	ErrNoDoctorAssigned    = errors.New("no doctor assigned")
)

// PairingUsecase is the pairing registry: the single authority for the
// doctor-patient assignment relation.
type PairingUsecase interface {
	CreatePairing(ctx context.Context, req *dto.CreatePairingRequest) (*dto.PairingResponse, error)
	GetMyPatients(ctx context.Context) (*dto.PatientListResponse, error)
	GetMyDoctor(ctx context.Context) (*dto.UserResponse, error)
}

type pairingUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	pairingRepo  repository.PairingRepository
	auditService service.AuditService
}

func NewPairingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	pairingRepo repository.PairingRepository,
	auditService service.AuditService,
) PairingUsecase {
	return &pairingUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		pairingRepo:  pairingRepo,
		auditService: auditService,
	}
}

// CreatePairing links a doctor and a patient. Creation is administrative and
// idempotent: relinking an existing pair succeeds without a second row.
func (u *pairingUsecase) CreatePairing(ctx context.Context, req *dto.CreatePairingRequest) (*dto.PairingResponse, error) {
	principal, ok := authz.PrincipalFromContext(ctx)
	if !ok {
		return nil, authz.ErrUnauthenticated
	}
	if principal.Role != authz.RoleAdmin {
		return nil, authz.ErrForbidden
	}

	db := u.db.WithContext(ctx)

	doctor, err := u.userRepo.FindByID(db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if doctor.RoleID != entity.RoleIDDoctor {
		return nil, ErrDoctorRoleRequired
	}

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

	link := &entity.PairingLink{
		DoctorID:  req.DoctorID,
		PatientID: req.PatientID,
	}

	tx := db.Begin()
	defer tx.Rollback()

	if err := u.pairingRepo.Link(tx, link); err != nil {
		u.log.Warnf("Failed to create pairing link: %+v", err)
		return nil, err
	}

	u.auditService.Record(tx, &principal.ID, entity.AuditActionPairingLink, entity.JSON{
		"doctor_id":  req.DoctorID.String(),
		"patient_id": req.PatientID.String(),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Pairing linked: doctor=%s, patient=%s", req.DoctorID, req.PatientID)
	return &dto.PairingResponse{
		ID:        link.ID,
		DoctorID:  link.DoctorID,
		PatientID: link.PatientID,
		CreatedAt: link.CreatedAt,
	}, nil
}

// GetMyPatients returns the patients paired with the calling doctor.
func (u *pairingUsecase) GetMyPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	principal, ok := authz.PrincipalFromContext(ctx)
	if !ok {
		return nil, authz.ErrUnauthenticated
	}
	if principal.Role != authz.RoleDoctor {
		return nil, authz.ErrForbidden
	}

	patients, err := u.pairingRepo.FindPatientsOf(u.db.WithContext(ctx), principal.ID)
	if err != nil {
		u.log.Warnf("Failed to find patients of doctor %s: %+v", principal.ID, err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.UsersToResponses(patients),
		Total:    len(patients),
	}, nil
}

// GetMyDoctor returns the calling patient's assigned doctor. The relation
// supports several, but the portal assumes at most one and returns the
// earliest link.
func (u *pairingUsecase) GetMyDoctor(ctx context.Context) (*dto.UserResponse, error) {
	principal, ok := authz.PrincipalFromContext(ctx)
	if !ok {
		return nil, authz.ErrUnauthenticated
	}
	if principal.Role != authz.RolePatient {
		return nil, authz.ErrForbidden
	}

	doctor, err := u.pairingRepo.FindDoctorOf(u.db.WithContext(ctx), principal.ID)
	if err != nil {
		u.log.Warnf("Failed to find doctor of patient %s: %+v", principal.ID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrNoDoctorAssigned
	}

	return converter.UserToResponse(doctor), nil
}
