package services

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"pressroom_backend/internal/logger"
	"pressroom_backend/internal/models"
	"pressroom_backend/internal/repositories"
	"pressroom_backend/pkg/apperrors"
)

const auditListLimit = 200

type AuditService interface {
	// Record writes one audit entry. Failures are logged and swallowed so
	// a broken audit sink never rolls back the mutation it describes.
	Record(ctx context.Context, db *gorm.DB, actorID, action, targetType, targetID string, details map[string]interface{})
	List(db *gorm.DB) ([]models.AuditLog, error)
}

type auditService struct {
	auditRepo repositories.AuditRepository
}

func NewAuditService(auditRepo repositories.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) Record(ctx context.Context, db *gorm.DB, actorID, action, targetType, targetID string, details map[string]interface{}) {
	entry := &models.AuditLog{
		UserID:     actorID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
	}
	if len(details) > 0 {
		raw, err := json.Marshal(details)
		if err != nil {
			logger.CtxWarn(ctx, "audit details not serializable", "action", action, "error", err)
		} else {
			entry.Details = datatypes.JSON(raw)
		}
	}

	if err := s.auditRepo.Create(db, entry); err != nil {
		logger.CtxError(ctx, "failed to write audit entry",
			"action", action, "target_type", targetType, "target_id", targetID, "error", err)
	}
}

func (s *auditService) List(db *gorm.DB) ([]models.AuditLog, error) {
	entries, err := s.auditRepo.List(db, auditListLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return entries, nil
}
