package usecase

import (
	"errors"
	"testing"

	"go-healthcare-portal/internal/authz"
	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/domain/entity"
	"go-healthcare-portal/internal/repository"

	"github.com/google/uuid"
)

func newPairingUsecaseForTest(t *testing.T) (PairingUsecase, *testFixture) {
	t.Helper()

	f := newTestFixture(t)
	uc := NewPairingUsecase(f.db, f.log, repository.NewUserRepository(), repository.NewPairingRepository(), f.audit)
	return uc, f
}

func TestCreatePairingIsIdempotent(t *testing.T) {
	uc, f := newPairingUsecaseForTest(t)
	admin := seedUser(t, f.db, entity.RoleIDAdmin, uniqueEmail("admin"), "Root Admin")
	doctor := seedUser(t, f.db, entity.RoleIDDoctor, uniqueEmail("doctor"), "Dr Who")
	patient := seedUser(t, f.db, entity.RoleIDPatient, uniqueEmail("patient"), "Pat Patient")
	ctx := principalContext(t, admin)

	req := &dto.CreatePairingRequest{DoctorID: doctor.ID, PatientID: patient.ID}
	if _, err := uc.CreatePairing(ctx, req); err != nil {
		t.Fatalf("first link: %v", err)
	}
	if _, err := uc.CreatePairing(ctx, req); err != nil {
		t.Fatalf("relink should succeed quietly: %v", err)
	}

	var count int64
	if err := f.db.Model(&entity.PairingLink{}).Count(&count).Error; err != nil {
		t.Fatalf("count links: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single link row, got %d", count)
	}
}

func TestCreatePairingAdminOnly(t *testing.T) {
	uc, f := newPairingUsecaseForTest(t)
	doctor := seedUser(t, f.db, entity.RoleIDDoctor, uniqueEmail("doctor"), "Dr Who")
	patient := seedUser(t, f.db, entity.RoleIDPatient, uniqueEmail("patient"), "Pat Patient")

	_, err := uc.CreatePairing(principalContext(t, doctor), &dto.CreatePairingRequest{
		DoctorID:  doctor.ID,
		PatientID: patient.ID,
	})
	if !errors.Is(err, authz.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for doctor, got %v", err)
	}
}

func TestCreatePairingValidatesRoles(t *testing.T) {
	uc, f := newPairingUsecaseForTest(t)
	admin := seedUser(t, f.db, entity.RoleIDAdmin, uniqueEmail("admin"), "Root Admin")
	doctor := seedUser(t, f.db, entity.RoleIDDoctor, uniqueEmail("doctor"), "Dr Who")
	patient := seedUser(t, f.db, entity.RoleIDPatient, uniqueEmail("patient"), "Pat Patient")
	ctx := principalContext(t, admin)

	cases := []struct {
		name    string
		req     dto.CreatePairingRequest
		wantErr error
	}{
		{"unknown doctor", dto.CreatePairingRequest{DoctorID: uuid.New(), PatientID: patient.ID}, ErrDoctorNotFound},
		{"patient in doctor slot", dto.CreatePairingRequest{DoctorID: patient.ID, PatientID: patient.ID}, ErrDoctorRoleRequired},
		{"unknown patient", dto.CreatePairingRequest{DoctorID: doctor.ID, PatientID: uuid.New()}, ErrPatientNotFound},
		{"doctor in patient slot", dto.CreatePairingRequest{DoctorID: doctor.ID, PatientID: doctor.ID}, ErrPatientRoleRequired},
	}
	for _, tc := range cases {
		if _, err := uc.CreatePairing(ctx, &tc.req); !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestPairingLookupsBothSides(t *testing.T) {
	uc, f := newPairingUsecaseForTest(t)
	admin := seedUser(t, f.db, entity.RoleIDAdmin, uniqueEmail("admin"), "Root Admin")
	doctor := seedUser(t, f.db, entity.RoleIDDoctor, uniqueEmail("doctor"), "Dr Who")
	patient := seedUser(t, f.db, entity.RoleIDPatient, uniqueEmail("patient"), "Pat Patient")
	lonePatient := seedUser(t, f.db, entity.RoleIDPatient, uniqueEmail("patient"), "Pat Alone")

	if _, err := uc.CreatePairing(principalContext(t, admin), &dto.CreatePairingRequest{
		DoctorID:  doctor.ID,
		PatientID: patient.ID,
	}); err != nil {
		t.Fatalf("link: %v", err)
	}

	patients, err := uc.GetMyPatients(principalContext(t, doctor))
	if err != nil {
		t.Fatalf("patients of doctor: %v", err)
	}
	if patients.Total != 1 || patients.Patients[0].ID != patient.ID {
		t.Fatalf("expected the paired patient, got %+v", patients)
	}

	assigned, err := uc.GetMyDoctor(principalContext(t, patient))
	if err != nil {
		t.Fatalf("doctor of patient: %v", err)
	}
	if assigned.ID != doctor.ID {
		t.Fatalf("expected doctor %s, got %s", doctor.ID, assigned.ID)
	}

	_, err = uc.GetMyDoctor(principalContext(t, lonePatient))
	if !errors.Is(err, ErrNoDoctorAssigned) {
		t.Fatalf("expected ErrNoDoctorAssigned, got %v", err)
	}
}
