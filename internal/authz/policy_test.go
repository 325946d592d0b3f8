package authz

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestDecideUserRecordSelfOnly(t *testing.T) {
	id := uuid.New()
	self := Principal{ID: id, Role: RolePatient}
	other := Principal{ID: uuid.New(), Role: RolePatient}

	if !Decide(self, ActionRead, UserRecord{ID: id}).Allowed() {
		t.Fatal("expected self read to be allowed")
	}
	if !Decide(self, ActionWrite, UserRecord{ID: id}).Allowed() {
		t.Fatal("expected self write to be allowed")
	}
	if Decide(other, ActionRead, UserRecord{ID: id}).Allowed() {
		t.Fatal("expected foreign read to be denied")
	}
}

func TestDecideHealthLogRules(t *testing.T) {
	ownerID := uuid.New()
	owner := Principal{ID: ownerID, Role: RolePatient}
	doctor := Principal{ID: uuid.New(), Role: RoleDoctor}
	stranger := Principal{ID: uuid.New(), Role: RolePatient}

	if !Decide(owner, ActionWrite, HealthLogRecord{OwnerID: ownerID}).Allowed() {
		t.Fatal("expected owner write to be allowed")
	}
	if !Decide(owner, ActionRead, HealthLogRecord{OwnerID: ownerID}).Allowed() {
		t.Fatal("expected owner read to be allowed")
	}

	paired := HealthLogRecord{OwnerID: ownerID, ViewerPaired: true}
	unpaired := HealthLogRecord{OwnerID: ownerID, ViewerPaired: false}

	if !Decide(doctor, ActionRead, paired).Allowed() {
		t.Fatal("expected paired doctor read to be allowed")
	}
	if Decide(doctor, ActionWrite, paired).Allowed() {
		t.Fatal("expected doctor write to be denied even when paired")
	}
	if Decide(doctor, ActionRead, unpaired).Allowed() {
		t.Fatal("expected unpaired doctor read to be denied")
	}
	if Decide(stranger, ActionRead, paired).Allowed() {
		t.Fatal("expected unrelated patient read to be denied")
	}
}

func TestDecidePairingVisibleToParticipants(t *testing.T) {
	doctorID := uuid.New()
	patientID := uuid.New()
	record := PairingRecord{DoctorID: doctorID, PatientID: patientID}

	if !Decide(Principal{ID: doctorID, Role: RoleDoctor}, ActionRead, record).Allowed() {
		t.Fatal("expected linked doctor read to be allowed")
	}
	if !Decide(Principal{ID: patientID, Role: RolePatient}, ActionRead, record).Allowed() {
		t.Fatal("expected linked patient read to be allowed")
	}
	if Decide(Principal{ID: uuid.New(), Role: RoleDoctor}, ActionRead, record).Allowed() {
		t.Fatal("expected outsider read to be denied")
	}
	if Decide(Principal{ID: doctorID, Role: RoleDoctor}, ActionWrite, record).Allowed() {
		t.Fatal("expected participant write to be denied, links are administrative")
	}
}

func TestDecideMessageSenderCannotBeForged(t *testing.T) {
	senderID := uuid.New()
	receiverID := uuid.New()
	record := MessageRecord{SenderID: senderID, ReceiverID: receiverID}

	if !Decide(Principal{ID: senderID, Role: RolePatient}, ActionWrite, record).Allowed() {
		t.Fatal("expected sender write to be allowed")
	}
	// The receiver may read the row but may not create it on the sender's
	// behalf.
	if Decide(Principal{ID: receiverID, Role: RoleDoctor}, ActionWrite, record).Allowed() {
		t.Fatal("expected forged sender write to be denied")
	}
	if !Decide(Principal{ID: receiverID, Role: RoleDoctor}, ActionRead, record).Allowed() {
		t.Fatal("expected receiver read to be allowed")
	}
	if Decide(Principal{ID: uuid.New(), Role: RolePatient}, ActionRead, record).Allowed() {
		t.Fatal("expected third-party read to be denied")
	}
}

func TestDecideCheckupParticipants(t *testing.T) {
	doctorID := uuid.New()
	patientID := uuid.New()
	record := CheckupRecord{DoctorID: doctorID, PatientID: patientID}

	if !Decide(Principal{ID: doctorID, Role: RoleDoctor}, ActionWrite, record).Allowed() {
		t.Fatal("expected authoring doctor write to be allowed")
	}
	if !Decide(Principal{ID: patientID, Role: RolePatient}, ActionRead, record).Allowed() {
		t.Fatal("expected named patient read to be allowed")
	}
	if Decide(Principal{ID: patientID, Role: RolePatient}, ActionWrite, record).Allowed() {
		t.Fatal("expected named patient write to be denied")
	}
	if Decide(Principal{ID: uuid.New(), Role: RoleDoctor}, ActionRead, record).Allowed() {
		t.Fatal("expected unrelated doctor read to be denied")
	}
}

func TestDecideDefaultsToDeny(t *testing.T) {
	valid := Principal{ID: uuid.New(), Role: RolePatient}

	// Unknown resource types fall through to Deny.
	if Decide(valid, ActionRead, struct{ X int }{}).Allowed() {
		t.Fatal("expected unknown resource to be denied")
	}
	if Decide(Principal{}, ActionRead, UserRecord{}).Allowed() {
		t.Fatal("expected zero principal to be denied")
	}
	if Decide(Principal{ID: uuid.New(), Role: Role("superuser")}, ActionRead, UserRecord{ID: valid.ID}).Allowed() {
		t.Fatal("expected unknown role to be denied")
	}
}

func TestPrincipalContextRoundTrip(t *testing.T) {
	p := Principal{ID: uuid.New(), Role: RoleDoctor}
	ctx := WithPrincipal(context.Background(), p)

	got, ok := PrincipalFromContext(ctx)
	if !ok {
		t.Fatal("expected principal in context")
	}
	if got != p {
		t.Fatalf("expected %+v, got %+v", p, got)
	}

	if _, ok := PrincipalFromContext(context.Background()); ok {
		t.Fatal("expected no principal in a bare context")
	}
}
