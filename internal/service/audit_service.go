package service

import (
	"github.com/Innie12/Inventory-Management-System/internal/model"
	"github.com/Innie12/Inventory-Management-System/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Audit actions recorded across the handlers.
const (
	AuditActionLogin       = "login"
	AuditActionRegister    = "register"
	AuditActionCreate      = "create"
	AuditActionUpdate      = "update"
	AuditActionDelete      = "delete"
	AuditActionAdjustStock = "adjust_stock"
	AuditActionResetPass   = "reset_password"
	AuditActionExport      = "export_report"
)

// AuditService appends to the audit trail. Writes are best-effort: a failed
// audit insert is logged and swallowed so it can never fail the request that
// triggered it.
type AuditService struct {
	auditRepo repository.AuditRepository
	log       *zap.Logger
}

func NewAuditService(auditRepo repository.AuditRepository, log *zap.Logger) *AuditService {
	return &AuditService{auditRepo: auditRepo, log: log}
}

func (s *AuditService) Record(userID *uuid.UUID, action, entityType string, entityID *uuid.UUID, description, ip, userAgent string) {
	entry := &model.AuditLog{
		UserID:      userID,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		Description: description,
		IPAddress:   ip,
		UserAgent:   userAgent,
	}
	if err := s.auditRepo.Create(entry); err != nil {
		s.log.Error("failed to write audit entry",
			zap.String("action", action),
			zap.String("entity_type", entityType),
			zap.Error(err))
	}
}

func (s *AuditService) List(filter repository.AuditFilter) ([]model.AuditLog, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = 25
	}
	return s.auditRepo.List(filter)
}
