package repositories

import (
	"errors"

	"gorm.io/gorm"

	"pressroom_backend/internal/models"
)

var ErrContentNotFound = errors.New("content not found")

type ContentRepository interface {
	Create(db *gorm.DB, content *models.Content) error
	FindByID(db *gorm.DB, id string) (*models.Content, error)
	List(db *gorm.DB, page, pageSize int) ([]models.Content, int64, error)
	Update(db *gorm.DB, content *models.Content) error
	Delete(db *gorm.DB, id string) error
}

type contentRepository struct{}

func NewContentRepository() ContentRepository {
	return &contentRepository{}
}

func (r *contentRepository) Create(db *gorm.DB, content *models.Content) error {
	return db.Create(content).Error
}

func (r *contentRepository) FindByID(db *gorm.DB, id string) (*models.Content, error) {
	var content models.Content
	if err := db.First(&content, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	return &content, nil
}

func (r *contentRepository) List(db *gorm.DB, page, pageSize int) ([]models.Content, int64, error) {
	var items []models.Content
	var total int64

	// db may arrive pre-scoped; fresh sessions keep the two queries from
	// polluting each other's conditions.
	if err := db.Session(&gorm.Session{}).Model(&models.Content{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := db.Session(&gorm.Session{}).Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error
	return items, total, err
}

func (r *contentRepository) Update(db *gorm.DB, content *models.Content) error {
	return db.Save(content).Error
}

func (r *contentRepository) Delete(db *gorm.DB, id string) error {
	return db.Delete(&models.Content{}, "id = ?", id).Error
}
