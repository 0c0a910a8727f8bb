package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"pressroom_backend/internal/models"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	CreateBatch(db *gorm.DB, notifications []models.Notification) error
	ListByUser(db *gorm.DB, userID string, page, pageSize int) ([]models.Notification, int64, error)
	FindByIDAndUser(db *gorm.DB, id, userID string) (*models.Notification, error)
	MarkRead(db *gorm.DB, notification *models.Notification) error
}

type notificationRepository struct{}

func NewNotificationRepository() NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) CreateBatch(db *gorm.DB, notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return db.Create(&notifications).Error
}

func (r *notificationRepository) ListByUser(db *gorm.DB, userID string, page, pageSize int) ([]models.Notification, int64, error) {
	var items []models.Notification
	var total int64

	base := db.Model(&models.Notification{}).Where("user_id = ?", userID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error
	return items, total, err
}

func (r *notificationRepository) FindByIDAndUser(db *gorm.DB, id, userID string) (*models.Notification, error) {
	var notification models.Notification
	err := db.Where("id = ? AND user_id = ?", id, userID).First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) MarkRead(db *gorm.DB, notification *models.Notification) error {
	now := time.Now()
	notification.IsRead = true
	notification.ReadAt = &now
	return db.Save(notification).Error
}
