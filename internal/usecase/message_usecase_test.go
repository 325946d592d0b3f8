package usecase

import (
	"context"
	"errors"
	"testing"

	"go-healthcare-portal/config"
	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/domain/entity"
	"go-healthcare-portal/internal/repository"
	"go-healthcare-portal/internal/service"

	"github.com/google/uuid"
)

// fakeNotifier records published events instead of touching Redis.
type fakeNotifier struct {
	events []service.MessageEvent
}

func (f *fakeNotifier) PublishMessage(_ context.Context, event service.MessageEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeNotifier) Subscribe(context.Context, uuid.UUID) (<-chan service.MessageEvent, func(), error) {
	events := make(chan service.MessageEvent)
	close(events)
	return events, func() {}, nil
}

func newMessageUsecaseForTest(t *testing.T, policy config.PolicyConfig) (MessageUsecase, *fakeNotifier, *testFixture) {
	t.Helper()

	f := newTestFixture(t)
	notifier := &fakeNotifier{}
	uc := NewMessageUsecase(
		f.db, f.log, policy,
		repository.NewMessageRepository(),
		repository.NewUserRepository(),
		repository.NewPairingRepository(),
		notifier,
		f.audit,
	)
	return uc, notifier, f
}

func TestSendAndThreadRoundTrip(t *testing.T) {
	uc, notifier, f := newMessageUsecaseForTest(t, config.PolicyConfig{})
	patient := seedUser(t, f.db, entity.RoleIDPatient, uniqueEmail("patient"), "Pat Patient")
	doctor := seedUser(t, f.db, entity.RoleIDDoctor, uniqueEmail("doctor"), "Dr Who")

	if _, err := uc.Send(principalContext(t, patient), &dto.SendMessageRequest{
		ReceiverID: doctor.ID,
		Message:    "I have been feeling dizzy in the mornings.",
	}); err != nil {
		t.Fatalf("patient send: %v", err)
	}
	if _, err := uc.Send(principalContext(t, doctor), &dto.SendMessageRequest{
		ReceiverID: patient.ID,
		Message:    "Noted, please log your heart rate daily this week.",
	}); err != nil {
		t.Fatalf("doctor send: %v", err)
	}

	// Both participants see the same conversation, oldest first.
	for _, viewer := range []*entity.User{patient, doctor} {
		other := doctor.ID
		if viewer.ID == doctor.ID {
			other = patient.ID
		}
		thread, err := uc.Thread(principalContext(t, viewer), other)
		if err != nil {
			t.Fatalf("thread as %s: %v", viewer.FullName, err)
		}
		if thread.Total != 2 {
			t.Fatalf("expected 2 messages for %s, got %d", viewer.FullName, thread.Total)
		}
		if thread.Messages[0].SenderID != patient.ID {
			t.Fatalf("expected patient's message first, got sender %s", thread.Messages[0].SenderID)
		}
	}

	if len(notifier.events) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(notifier.events))
	}
	if notifier.events[0].ReceiverID != doctor.ID {
		t.Fatalf("expected first event addressed to the doctor, got %s", notifier.events[0].ReceiverID)
	}
}

func TestSendRejectsBlankMessage(t *testing.T) {
	uc, _, f := newMessageUsecaseForTest(t, config.PolicyConfig{})
	patient := seedUser(t, f.db, entity.RoleIDPatient, uniqueEmail("patient"), "Pat Patient")
	doctor := seedUser(t, f.db, entity.RoleIDDoctor, uniqueEmail("doctor"), "Dr Who")

	_, err := uc.Send(principalContext(t, patient), &dto.SendMessageRequest{
		ReceiverID: doctor.ID,
		Message:    "   \t ",
	})
	if !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestSendRejectsSelfAndUnknownReceiver(t *testing.T) {
	uc, _, f := newMessageUsecaseForTest(t, config.PolicyConfig{})
	patient := seedUser(t, f.db, entity.RoleIDPatient, uniqueEmail("patient"), "Pat Patient")
	ctx := principalContext(t, patient)

	_, err := uc.Send(ctx, &dto.SendMessageRequest{ReceiverID: patient.ID, Message: "note to self"})
	if !errors.Is(err, ErrSelfMessage) {
		t.Fatalf("expected ErrSelfMessage, got %v", err)
	}

	_, err = uc.Send(ctx, &dto.SendMessageRequest{ReceiverID: uuid.New(), Message: "hello?"})
	if !errors.Is(err, ErrReceiverNotFound) {
		t.Fatalf("expected ErrReceiverNotFound, got %v", err)
	}
}

func TestThreadThirdPartySeesOwnEmptyConversation(t *testing.T) {
	uc, _, f := newMessageUsecaseForTest(t, config.PolicyConfig{})
	patient := seedUser(t, f.db, entity.RoleIDPatient, uniqueEmail("patient"), "Pat Patient")
	doctor := seedUser(t, f.db, entity.RoleIDDoctor, uniqueEmail("doctor"), "Dr Who")
	intruder := seedUser(t, f.db, entity.RoleIDPatient, uniqueEmail("patient"), "Pat Intruder")

	if _, err := uc.Send(principalContext(t, patient), &dto.SendMessageRequest{
		ReceiverID: doctor.ID,
		Message:    "private",
	}); err != nil {
		t.Fatalf("send: %v", err)
	}

	// The principal is always one endpoint of the query, so asking about the
	// doctor yields the intruder's own conversation with them: nothing.
	thread, err := uc.Thread(principalContext(t, intruder), doctor.ID)
	if err != nil {
		t.Fatalf("thread as intruder: %v", err)
	}
	if thread.Total != 0 || len(thread.Messages) != 0 {
		t.Fatalf("expected empty thread for third party, got %d messages", thread.Total)
	}
}

func TestSendPairingToggleBothOrientations(t *testing.T) {
	uc, _, f := newMessageUsecaseForTest(t, config.PolicyConfig{RequirePairingForMessages: true})
	patient := seedUser(t, f.db, entity.RoleIDPatient, uniqueEmail("patient"), "Pat Patient")
	doctor := seedUser(t, f.db, entity.RoleIDDoctor, uniqueEmail("doctor"), "Dr Who")

	_, err := uc.Send(principalContext(t, patient), &dto.SendMessageRequest{
		ReceiverID: doctor.ID,
		Message:    "are you my doctor?",
	})
	if !errors.Is(err, ErrNotPaired) {
		t.Fatalf("expected ErrNotPaired before linking, got %v", err)
	}

	linkPair(t, f.db, doctor.ID, patient.ID)

	// The link is stored doctor-to-patient; both directions must pass.
	if _, err := uc.Send(principalContext(t, patient), &dto.SendMessageRequest{
		ReceiverID: doctor.ID,
		Message:    "good morning",
	}); err != nil {
		t.Fatalf("patient to doctor after linking: %v", err)
	}
	if _, err := uc.Send(principalContext(t, doctor), &dto.SendMessageRequest{
		ReceiverID: patient.ID,
		Message:    "good morning to you too",
	}); err != nil {
		t.Fatalf("doctor to patient after linking: %v", err)
	}
}
