package usecase

import (
	"context"

	"go-healthcare-portal/internal/authz"
	"go-healthcare-portal/internal/converter"
	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditLogUsecase interface {
	GetRecent(ctx context.Context, limit int) (*dto.AuditLogListResponse, error)
}

type auditLogUsecase struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditLogUsecase {
	return &auditLogUsecase{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

func (u *auditLogUsecase) GetRecent(ctx context.Context, limit int) (*dto.AuditLogListResponse, error) {
	principal, ok := authz.PrincipalFromContext(ctx)
	if !ok {
		return nil, authz.ErrUnauthenticated
	}
	if principal.Role != authz.RoleAdmin {
		return nil, authz.ErrForbidden
	}

	logs, err := u.auditRepo.FindRecent(u.db.WithContext(ctx), limit)
	if err != nil {
		u.log.Warnf("Failed to find audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		AuditLogs: converter.AuditLogsToResponses(logs),
		Total:     len(logs),
	}, nil
}
