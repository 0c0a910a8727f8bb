package repositories

import (
	"errors"

	"gorm.io/gorm"

	"pressroom_backend/internal/models"
)

type ReactionRepository interface {
	// Upsert creates the caller's reaction on a content item or replaces
	// its type. Returns true when a new row was created.
	Upsert(db *gorm.DB, reaction *models.Reaction) (bool, error)
	Delete(db *gorm.DB, userID, contentID string) error
}

type reactionRepository struct{}

func NewReactionRepository() ReactionRepository {
	return &reactionRepository{}
}

func (r *reactionRepository) Upsert(db *gorm.DB, reaction *models.Reaction) (bool, error) {
	var existing models.Reaction
	err := db.Where("user_id = ? AND content_id = ?", reaction.UserID, reaction.ContentID).
		First(&existing).Error
	if err == nil {
		existing.Type = reaction.Type
		*reaction = existing
		return false, db.Save(&existing).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return true, db.Create(reaction).Error
}

func (r *reactionRepository) Delete(db *gorm.DB, userID, contentID string) error {
	return db.Where("user_id = ? AND content_id = ?", userID, contentID).
		Delete(&models.Reaction{}).Error
}
