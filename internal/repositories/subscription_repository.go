package repositories

import (
	"errors"

	"gorm.io/gorm"

	"pressroom_backend/internal/models"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

type SubscriptionRepository interface {
	Create(db *gorm.DB, sub *models.Subscription) error
	Find(db *gorm.DB, userID, categoryID string) (*models.Subscription, error)
	ListByCategory(db *gorm.DB, categoryID string) ([]models.Subscription, error)
	Delete(db *gorm.DB, userID, categoryID string) error
}

type subscriptionRepository struct{}

func NewSubscriptionRepository() SubscriptionRepository {
	return &subscriptionRepository{}
}

func (r *subscriptionRepository) Create(db *gorm.DB, sub *models.Subscription) error {
	return db.Create(sub).Error
}

func (r *subscriptionRepository) Find(db *gorm.DB, userID, categoryID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := db.Where("user_id = ? AND category_id = ?", userID, categoryID).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) ListByCategory(db *gorm.DB, categoryID string) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := db.Where("category_id = ?", categoryID).Find(&subs).Error
	return subs, err
}

func (r *subscriptionRepository) Delete(db *gorm.DB, userID, categoryID string) error {
	result := db.Where("user_id = ? AND category_id = ?", userID, categoryID).
		Delete(&models.Subscription{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}
