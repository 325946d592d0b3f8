package usecase

import (
	"context"
	"errors"
	"strings"

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
	ErrEmptyMessage     = errors.New("message text must not be empty")
	ErrReceiverNotFound = errors.New("receiver not found")
	ErrSelfMessage      = errors.New("cannot message yourself")
	ErrNotPaired        = errors.New("principals are not paired")
)

type MessageUsecase interface {
	Send(ctx context.Context, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	Thread(ctx context.Context, otherID uuid.UUID) (*dto.ThreadResponse, error)
}

type messageUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	policy       config.PolicyConfig
	messageRepo  repository.MessageRepository
	userRepo     repository.UserRepository
	pairingRepo  repository.PairingRepository
	notifier     service.Notifier
	auditService service.AuditService
}

func NewMessageUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	policy config.PolicyConfig,
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	pairingRepo repository.PairingRepository,
	notifier service.Notifier,
	auditService service.AuditService,
) MessageUsecase {
	return &messageUsecase{
		db:           db,
		log:          log,
		policy:       policy,
		messageRepo:  messageRepo,
		userRepo:     userRepo,
		pairingRepo:  pairingRepo,
		notifier:     notifier,
		auditService: auditService,
	}
}

// Send creates an immutable message from the calling principal. The sender is
// always the context principal, so a crafted payload cannot forge another
// sender; the policy engine re-checks that invariant before the insert.
func (u *messageUsecase) Send(ctx context.Context, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	principal, ok := authz.PrincipalFromContext(ctx)
	if !ok {
		return nil, authz.ErrUnauthenticated
	}

	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if req.ReceiverID == principal.ID {
		return nil, ErrSelfMessage
	}

	record := authz.MessageRecord{SenderID: principal.ID, ReceiverID: req.ReceiverID}
	if !authz.Decide(principal, authz.ActionWrite, record).Allowed() {
		return nil, authz.ErrForbidden
	}

	db := u.db.WithContext(ctx)

	receiver, err := u.userRepo.FindByID(db, req.ReceiverID)
	if err != nil {
		u.log.Warnf("Failed to find receiver %s: %+v", req.ReceiverID, err)
		return nil, err
	}
	if receiver == nil {
		return nil, ErrReceiverNotFound
	}

	if u.policy.RequirePairingForMessages {
		if err := u.requirePairing(db, principal.ID, req.ReceiverID); err != nil {
			return nil, err
		}
	}

	message := &entity.Message{
		SenderID:   principal.ID,
		ReceiverID: req.ReceiverID,
		Message:    text,
	}

	tx := db.Begin()
	defer tx.Rollback()

	if err := u.messageRepo.Create(tx, message); err != nil {
		u.log.Warnf("Failed to create message: %+v", err)
		return nil, err
	}

	u.auditService.Record(tx, &principal.ID, entity.AuditActionMessageSend, entity.JSON{
		"message_id":  message.ID.String(),
		"receiver_id": req.ReceiverID.String(),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	// Change notification is best-effort: a missed event only delays the
	// recipient until their next fetch.
	event := service.MessageEvent{
		MessageID:  message.ID,
		SenderID:   message.SenderID,
		ReceiverID: message.ReceiverID,
		Timestamp:  message.Timestamp,
	}
	if err := u.notifier.PublishMessage(ctx, event); err != nil {
		u.log.Warnf("Failed to publish message event %s (non-fatal): %+v", message.ID, err)
	}

	return converter.MessageToResponse(message), nil
}

// Thread returns the conversation between the calling principal and otherID,
// oldest first. The principal is always one endpoint of the query, so a third
// party asking about someone else's thread only ever sees their own (empty)
// conversation with that user.
func (u *messageUsecase) Thread(ctx context.Context, otherID uuid.UUID) (*dto.ThreadResponse, error) {
	principal, ok := authz.PrincipalFromContext(ctx)
	if !ok {
		return nil, authz.ErrUnauthenticated
	}

	record := authz.MessageRecord{SenderID: principal.ID, ReceiverID: otherID}
	if !authz.Decide(principal, authz.ActionRead, record).Allowed() {
		return &dto.ThreadResponse{Messages: []dto.MessageResponse{}}, nil
	}

	messages, err := u.messageRepo.FindThread(u.db.WithContext(ctx), principal.ID, otherID)
	if err != nil {
		u.log.Warnf("Failed to find thread for %s: %+v", principal.ID, err)
		return nil, err
	}

	return &dto.ThreadResponse{
		Messages: converter.MessagesToResponses(messages),
		Total:    len(messages),
	}, nil
}

// requirePairing accepts the link in either orientation so both the doctor
// and the patient can initiate.
func (u *messageUsecase) requirePairing(db *gorm.DB, a, b uuid.UUID) error {
	paired, err := u.pairingRepo.Exists(db, a, b)
	if err != nil {
		return err
	}
	if !paired {
		paired, err = u.pairingRepo.Exists(db, b, a)
		if err != nil {
			return err
		}
	}
	if !paired {
		return ErrNotPaired
	}
	return nil
}
