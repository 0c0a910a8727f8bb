package repositories

import (
	"gorm.io/gorm"

	"pressroom_backend/internal/models"
)

type AuditRepository interface {
	Create(db *gorm.DB, entry *models.AuditLog) error
	List(db *gorm.DB, limit int) ([]models.AuditLog, error)
}

type auditRepository struct{}

func NewAuditRepository() AuditRepository {
	return &auditRepository{}
}

func (r *auditRepository) Create(db *gorm.DB, entry *models.AuditLog) error {
	return db.Create(entry).Error
}

func (r *auditRepository) List(db *gorm.DB, limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := db.Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
