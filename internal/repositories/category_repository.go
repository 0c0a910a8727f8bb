package repositories

import (
	"errors"

	"gorm.io/gorm"

	"pressroom_backend/internal/models"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryNameTaken = errors.New("category name already taken")
)

type CategoryRepository interface {
	Create(db *gorm.DB, category *models.Category) error
	FindByID(db *gorm.DB, id string) (*models.Category, error)
	FindByName(db *gorm.DB, name string) (*models.Category, error)
	List(db *gorm.DB) ([]models.Category, error)
	Update(db *gorm.DB, category *models.Category) error
	Delete(db *gorm.DB, id string) error
}

type categoryRepository struct{}

func NewCategoryRepository() CategoryRepository {
	return &categoryRepository{}
}

func (r *categoryRepository) Create(db *gorm.DB, category *models.Category) error {
	if err := db.Create(category).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrCategoryNameTaken
		}
		return err
	}
	return nil
}

func (r *categoryRepository) FindByID(db *gorm.DB, id string) (*models.Category, error) {
	var category models.Category
	if err := db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindByName(db *gorm.DB, name string) (*models.Category, error) {
	var category models.Category
	if err := db.Where("name = ?", name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List(db *gorm.DB) ([]models.Category, error) {
	var categories []models.Category
	err := db.Order("name").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) Update(db *gorm.DB, category *models.Category) error {
	if err := db.Save(category).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrCategoryNameTaken
		}
		return err
	}
	return nil
}

func (r *categoryRepository) Delete(db *gorm.DB, id string) error {
	return db.Delete(&models.Category{}, "id = ?", id).Error
}
