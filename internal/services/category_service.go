package services

import (
	"context"

	"gorm.io/gorm"

	"pressroom_backend/internal/models"
	"pressroom_backend/internal/repositories"
	"pressroom_backend/internal/services/dto"
	"pressroom_backend/pkg/apperrors"
)

type CategoryService interface {
	Create(ctx context.Context, db *gorm.DB, actorID string, req *dto.CategoryRequest) (*dto.CategoryResponse, error)
	Update(ctx context.Context, db *gorm.DB, actorID, categoryID string, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, db *gorm.DB, actorID, categoryID string) error
	Get(db *gorm.DB, categoryID string) (*dto.CategoryResponse, error)
	List(db *gorm.DB) ([]dto.CategoryResponse, error)

	Subscribe(db *gorm.DB, userID, categoryID string) error
	Unsubscribe(db *gorm.DB, userID, categoryID string) error
}

type categoryService struct {
	categoryRepo     repositories.CategoryRepository
	subscriptionRepo repositories.SubscriptionRepository
	auditSvc         AuditService
}

func NewCategoryService(
	categoryRepo repositories.CategoryRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	auditSvc AuditService,
) CategoryService {
	return &categoryService{
		categoryRepo:     categoryRepo,
		subscriptionRepo: subscriptionRepo,
		auditSvc:         auditSvc,
	}
}

func (s *categoryService) Create(ctx context.Context, db *gorm.DB, actorID string, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   actorID,
	}
	if err := s.categoryRepo.Create(db, category); err != nil {
		if apperrors.Is(err, repositories.ErrCategoryNameTaken) {
			return nil, apperrors.ErrCategoryNameTaken
		}
		return nil, apperrors.InternalError(err)
	}

	s.auditSvc.Record(ctx, db, actorID, "category.create", "category", category.ID,
		map[string]interface{}{"name": category.Name})
	return toCategoryResponse(category), nil
}

func (s *categoryService) Update(ctx context.Context, db *gorm.DB, actorID, categoryID string, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := s.findCategory(db, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != category.Name {
		if existing, err := s.categoryRepo.FindByName(db, *req.Name); err == nil && existing.ID != category.ID {
			return nil, apperrors.ErrCategoryNameTaken
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := s.categoryRepo.Update(db, category); err != nil {
		if apperrors.Is(err, repositories.ErrCategoryNameTaken) {
			return nil, apperrors.ErrCategoryNameTaken
		}
		return nil, apperrors.InternalError(err)
	}

	s.auditSvc.Record(ctx, db, actorID, "category.update", "category", category.ID, nil)
	return toCategoryResponse(category), nil
}

func (s *categoryService) Delete(ctx context.Context, db *gorm.DB, actorID, categoryID string) error {
	category, err := s.findCategory(db, categoryID)
	if err != nil {
		return err
	}

	if err := s.categoryRepo.Delete(db, category.ID); err != nil {
		return apperrors.InternalError(err)
	}

	s.auditSvc.Record(ctx, db, actorID, "category.delete", "category", category.ID,
		map[string]interface{}{"name": category.Name})
	return nil
}

func (s *categoryService) Get(db *gorm.DB, categoryID string) (*dto.CategoryResponse, error) {
	category, err := s.findCategory(db, categoryID)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

func (s *categoryService) List(db *gorm.DB) ([]dto.CategoryResponse, error) {
	categories, err := s.categoryRepo.List(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, *toCategoryResponse(&categories[i]))
	}
	return items, nil
}

func (s *categoryService) Subscribe(db *gorm.DB, userID, categoryID string) error {
	if _, err := s.findCategory(db, categoryID); err != nil {
		return err
	}

	if _, err := s.subscriptionRepo.Find(db, userID, categoryID); err == nil {
		return apperrors.ErrAlreadySubscribed
	} else if !apperrors.Is(err, repositories.ErrSubscriptionNotFound) {
		return apperrors.InternalError(err)
	}

	sub := &models.Subscription{UserID: userID, CategoryID: categoryID}
	if err := s.subscriptionRepo.Create(db, sub); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *categoryService) Unsubscribe(db *gorm.DB, userID, categoryID string) error {
	if err := s.subscriptionRepo.Delete(db, userID, categoryID); err != nil {
		if apperrors.Is(err, repositories.ErrSubscriptionNotFound) {
			return apperrors.ErrSubscriptionAbsent
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *categoryService) findCategory(db *gorm.DB, id string) (*models.Category, error) {
	category, err := s.categoryRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return category, nil
}

func toCategoryResponse(c *models.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}
