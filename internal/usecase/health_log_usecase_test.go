package usecase

import (
	"errors"
	"testing"

	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/domain/entity"
	"go-healthcare-portal/internal/repository"
)

func newHealthLogUsecaseForTest(t *testing.T) (HealthLogUsecase, *testFixture) {
	t.Helper()

	f := newTestFixture(t)
	uc := NewHealthLogUsecase(f.db, f.log, repository.NewHealthLogRepository(), repository.NewPairingRepository(), f.audit)
	return uc, f
}

func TestAppendCreatesOneRowPerEntry(t *testing.T) {
	uc, f := newHealthLogUsecaseForTest(t)
	patient := seedUser(t, f.db, entity.RoleIDPatient, uniqueEmail("patient"), "Pat Patient")
	ctx := principalContext(t, patient)

	first, err := uc.Append(ctx, &dto.CreateHealthLogRequest{
		Date: "2026-08-30", Steps: 7000, WaterML: 2000, HeartRate: 72, SleepHours: 7.5,
	})
	if err != nil {
		t.Fatalf("append first log: %v", err)
	}

	// Same date again: an independent second row, not a merge.
	second, err := uc.Append(ctx, &dto.CreateHealthLogRequest{
		Date: "2026-08-30", Steps: 9000, WaterML: 2500, HeartRate: 70, SleepHours: 8,
	})
	if err != nil {
		t.Fatalf("append second log: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("expected two distinct rows for the same date")
	}

	history, err := uc.History(ctx, patient.ID, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if history.Total != 2 {
		t.Fatalf("expected 2 entries, got %d", history.Total)
	}
	if got := countAuditRows(t, f.db, entity.AuditActionHealthLogEntry); got != 2 {
		t.Fatalf("expected 2 audit rows, got %d", got)
	}
}

func TestAppendRejectsMalformedDate(t *testing.T) {
	uc, f := newHealthLogUsecaseForTest(t)
	patient := seedUser(t, f.db, entity.RoleIDPatient, uniqueEmail("patient"), "Pat Patient")

	_, err := uc.Append(principalContext(t, patient), &dto.CreateHealthLogRequest{Date: "30-08-2026"})
	if !errors.Is(err, ErrInvalidLogDate) {
		t.Fatalf("expected ErrInvalidLogDate, got %v", err)
	}
}

func TestHistoryVisibilityFollowsPairing(t *testing.T) {
	uc, f := newHealthLogUsecaseForTest(t)
	patient := seedUser(t, f.db, entity.RoleIDPatient, uniqueEmail("patient"), "Pat Patient")
	pairedDoctor := seedUser(t, f.db, entity.RoleIDDoctor, uniqueEmail("doctor"), "Dr Paired")
	otherDoctor := seedUser(t, f.db, entity.RoleIDDoctor, uniqueEmail("doctor"), "Dr Other")
	otherPatient := seedUser(t, f.db, entity.RoleIDPatient, uniqueEmail("patient"), "Pat Other")
	linkPair(t, f.db, pairedDoctor.ID, patient.ID)

	if _, err := uc.Append(principalContext(t, patient), &dto.CreateHealthLogRequest{
		Date: "2026-08-29", Steps: 6000, WaterML: 1800, HeartRate: 75, SleepHours: 7,
	}); err != nil {
		t.Fatalf("append log: %v", err)
	}

	pairedView, err := uc.History(principalContext(t, pairedDoctor), patient.ID, 0)
	if err != nil {
		t.Fatalf("paired doctor history: %v", err)
	}
	if pairedView.Total != 1 {
		t.Fatalf("expected paired doctor to see 1 entry, got %d", pairedView.Total)
	}

	// An unassigned doctor and an unrelated patient both get an empty set;
	// neither the data nor its existence leaks.
	for _, viewer := range []*entity.User{otherDoctor, otherPatient} {
		view, err := uc.History(principalContext(t, viewer), patient.ID, 0)
		if err != nil {
			t.Fatalf("history as %s: %v", viewer.FullName, err)
		}
		if view.Total != 0 || len(view.Logs) != 0 {
			t.Fatalf("expected empty history for %s, got %d entries", viewer.FullName, view.Total)
		}
	}
}

func TestHistoryDerivesAlertsFromLatestEntry(t *testing.T) {
	uc, f := newHealthLogUsecaseForTest(t)
	patient := seedUser(t, f.db, entity.RoleIDPatient, uniqueEmail("patient"), "Pat Patient")
	ctx := principalContext(t, patient)

	// Older entry is healthy, latest trips every threshold.
	if _, err := uc.Append(ctx, &dto.CreateHealthLogRequest{
		Date: "2026-08-28", Steps: 10000, WaterML: 2500, HeartRate: 65, SleepHours: 8,
	}); err != nil {
		t.Fatalf("append healthy log: %v", err)
	}
	if _, err := uc.Append(ctx, &dto.CreateHealthLogRequest{
		Date: "2026-08-29", Steps: 2000, WaterML: 900, HeartRate: 110, SleepHours: 4.5,
	}); err != nil {
		t.Fatalf("append unhealthy log: %v", err)
	}

	history, err := uc.History(ctx, patient.ID, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history.Alerts) != 4 {
		t.Fatalf("expected 4 alerts from the latest entry, got %d: %+v", len(history.Alerts), history.Alerts)
	}

	levels := map[string]string{}
	for _, alert := range history.Alerts {
		levels[alert.Metric] = alert.Level
	}
	if levels["heart_rate"] != AlertLevelWarning || levels["sleep_hours"] != AlertLevelWarning {
		t.Fatalf("expected heart_rate and sleep_hours warnings, got %v", levels)
	}
	if levels["water_ml"] != AlertLevelInfo || levels["steps"] != AlertLevelInfo {
		t.Fatalf("expected water_ml and steps info alerts, got %v", levels)
	}
}

func TestHistoryNoAlertsWithoutEntries(t *testing.T) {
	uc, f := newHealthLogUsecaseForTest(t)
	patient := seedUser(t, f.db, entity.RoleIDPatient, uniqueEmail("patient"), "Pat Patient")

	history, err := uc.History(principalContext(t, patient), patient.ID, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history.Alerts) != 0 {
		t.Fatalf("expected no alerts for empty history, got %+v", history.Alerts)
	}
}

func TestHistoryLimitReturnsNewestFirst(t *testing.T) {
	uc, f := newHealthLogUsecaseForTest(t)
	patient := seedUser(t, f.db, entity.RoleIDPatient, uniqueEmail("patient"), "Pat Patient")
	ctx := principalContext(t, patient)

	for _, date := range []string{"2026-08-25", "2026-08-26", "2026-08-27"} {
		if _, err := uc.Append(ctx, &dto.CreateHealthLogRequest{
			Date: date, Steps: 8000, WaterML: 2000, HeartRate: 70, SleepHours: 7,
		}); err != nil {
			t.Fatalf("append log for %s: %v", date, err)
		}
	}

	history, err := uc.History(ctx, patient.ID, 2)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if history.Total != 2 {
		t.Fatalf("expected limit of 2 entries, got %d", history.Total)
	}
	if history.Logs[0].Date != "2026-08-27" || history.Logs[1].Date != "2026-08-26" {
		t.Fatalf("expected newest-first ordering, got %s then %s", history.Logs[0].Date, history.Logs[1].Date)
	}
}
