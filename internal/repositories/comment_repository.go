package repositories

import (
	"errors"

	"gorm.io/gorm"

	"pressroom_backend/internal/models"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentRepository interface {
	Create(db *gorm.DB, comment *models.Comment) error
	FindByID(db *gorm.DB, id string) (*models.Comment, error)
	// FindByIDAndContent scopes the lookup to one content item, used to
	// validate parent references.
	FindByIDAndContent(db *gorm.DB, id, contentID string) (*models.Comment, error)
	ListByContent(db *gorm.DB, contentID string) ([]models.Comment, error)
	Update(db *gorm.DB, comment *models.Comment) error
	DeleteByIDs(db *gorm.DB, ids []string) error
}

type commentRepository struct{}

func NewCommentRepository() CommentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(db *gorm.DB, comment *models.Comment) error {
	return db.Create(comment).Error
}

func (r *commentRepository) FindByID(db *gorm.DB, id string) (*models.Comment, error) {
	var comment models.Comment
	if err := db.First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) FindByIDAndContent(db *gorm.DB, id, contentID string) (*models.Comment, error) {
	var comment models.Comment
	err := db.Where("id = ? AND content_id = ?", id, contentID).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// ListByContent returns every comment under a content item in creation
// order, which is what the single-pass tree assembly expects.
func (r *commentRepository) ListByContent(db *gorm.DB, contentID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := db.Where("content_id = ?", contentID).
		Order("created_at").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Update(db *gorm.DB, comment *models.Comment) error {
	return db.Save(comment).Error
}

func (r *commentRepository) DeleteByIDs(db *gorm.DB, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return db.Delete(&models.Comment{}, "id IN ?", ids).Error
}
