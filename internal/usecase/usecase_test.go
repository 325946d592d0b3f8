package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"go-healthcare-portal/internal/authz"
	"go-healthcare-portal/internal/domain/entity"
	"go-healthcare-portal/internal/repository"
	"go-healthcare-portal/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB opens a throwaway SQLite database with the portal schema and
// seeded roles. TranslateError maps the driver's unique-constraint error onto
// gorm.ErrDuplicatedKey, matching what the postgres error check looks for.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "portal.db")
	db, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.PairingLink{},
		&entity.HealthLog{},
		&entity.Message{},
		&entity.Checkup{},
		&entity.AuditLog{},
	); err != nil {
		t.Fatalf("migrate schema: %v", err)
	}

	roles := []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: "admin"},
		{ID: entity.RoleIDDoctor, RoleName: "doctor"},
		{ID: entity.RoleIDPatient, RoleName: "patient"},
	}
	if err := db.Create(&roles).Error; err != nil {
		t.Fatalf("seed roles: %v", err)
	}

	return db
}

// testFixture bundles the pieces every usecase constructor wants.
type testFixture struct {
	db    *gorm.DB
	log   *logrus.Logger
	audit service.AuditService
}

func newTestFixture(t *testing.T) *testFixture {
	t.Helper()

	log := silentLogger()
	return &testFixture{
		db:    openTestDB(t),
		log:   log,
		audit: newTestAuditService(log),
	}
}

func silentLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestAuditService(log *logrus.Logger) service.AuditService {
	return service.NewAuditService(log, repository.NewAuditLogRepository())
}

func seedUser(t *testing.T, db *gorm.DB, roleID int, email, fullName string) *entity.User {
	t.Helper()

	user := &entity.User{
		RoleID:   roleID,
		Email:    email,
		Password: "not-a-real-hash",
		FullName: fullName,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

func principalContext(t *testing.T, user *entity.User) context.Context {
	t.Helper()

	role, ok := entity.RoleFromID(user.RoleID)
	if !ok {
		t.Fatalf("unknown role id %d", user.RoleID)
	}
	return authz.WithPrincipal(context.Background(), authz.Principal{ID: user.ID, Role: role})
}

func linkPair(t *testing.T, db *gorm.DB, doctorID, patientID uuid.UUID) {
	t.Helper()

	link := &entity.PairingLink{DoctorID: doctorID, PatientID: patientID}
	if err := db.Create(link).Error; err != nil {
		t.Fatalf("link doctor %s to patient %s: %v", doctorID, patientID, err)
	}
}

func countAuditRows(t *testing.T, db *gorm.DB, action string) int64 {
	t.Helper()

	var count int64
	if err := db.Model(&entity.AuditLog{}).Where("action = ?", action).Count(&count).Error; err != nil {
		t.Fatalf("count audit rows for %s: %v", action, err)
	}
	return count
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@example.com", prefix, uuid.NewString()[:8])
}
