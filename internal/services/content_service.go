package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"pressroom_backend/internal/auth"
	"pressroom_backend/internal/models"
	"pressroom_backend/internal/repositories"
	"pressroom_backend/internal/services/dto"
	"pressroom_backend/pkg/apperrors"
)

type ContentService interface {
	Create(ctx context.Context, db *gorm.DB, actorID string, actorRoles []string, req *dto.CreateContentRequest) (*dto.ContentResponse, error)
	Update(ctx context.Context, db *gorm.DB, actorID string, actorRoles []string, contentID string, req *dto.UpdateContentRequest) (*dto.ContentResponse, error)
	Delete(ctx context.Context, db *gorm.DB, actorID string, actorRoles []string, contentID string) error
	Get(db *gorm.DB, viewerID string, viewerRoles []string, contentID string) (*dto.ContentResponse, error)
	List(db *gorm.DB, viewerRoles []string, page, pageSize int) (*dto.ContentListResponse, error)

	// Flag marks content for moderation review. Admin only.
	Flag(ctx context.Context, db *gorm.DB, actorID, contentID, reason string) (*dto.ContentResponse, error)

	React(ctx context.Context, db *gorm.DB, userID, contentID string, reaction models.ReactionType) error
	RemoveReaction(db *gorm.DB, userID, contentID string) error
}

type contentService struct {
	contentRepo     repositories.ContentRepository
	categoryRepo    repositories.CategoryRepository
	reactionRepo    repositories.ReactionRepository
	notificationSvc NotificationService
	auditSvc        AuditService
}

func NewContentService(
	contentRepo repositories.ContentRepository,
	categoryRepo repositories.CategoryRepository,
	reactionRepo repositories.ReactionRepository,
	notificationSvc NotificationService,
	auditSvc AuditService,
) ContentService {
	return &contentService{
		contentRepo:     contentRepo,
		categoryRepo:    categoryRepo,
		reactionRepo:    reactionRepo,
		notificationSvc: notificationSvc,
		auditSvc:        auditSvc,
	}
}

func (s *contentService) Create(ctx context.Context, db *gorm.DB, actorID string, actorRoles []string, req *dto.CreateContentRequest) (*dto.ContentResponse, error) {
	if !auth.HasAnyRole(actorRoles, auth.RoleTechWriter, auth.RoleAdmin) {
		return nil, apperrors.ErrContentForbidden
	}

	status := models.ContentStatusDraft
	if req.Status != "" {
		status = models.ContentStatus(req.Status)
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(db, *req.CategoryID); err != nil {
			if apperrors.Is(err, repositories.ErrCategoryNotFound) {
				return nil, apperrors.ErrCategoryNotFound
			}
			return nil, apperrors.InternalError(err)
		}
	}

	content := &models.Content{
		Title:       req.Title,
		Body:        req.Body,
		MediaURL:    req.MediaURL,
		ContentType: models.ContentType(req.ContentType),
		Status:      status,
		AuthorID:    actorID,
		CategoryID:  req.CategoryID,
	}
	if err := s.contentRepo.Create(db, content); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if content.Status == models.ContentStatusPublished {
		s.notificationSvc.NotifySubscribers(ctx, db, content, actorID)
	}

	return toContentResponse(content), nil
}

func (s *contentService) Update(ctx context.Context, db *gorm.DB, actorID string, actorRoles []string, contentID string, req *dto.UpdateContentRequest) (*dto.ContentResponse, error) {
	content, err := s.findContent(db, contentID)
	if err != nil {
		return nil, err
	}
	if content.AuthorID != actorID && !auth.IsAdmin(actorRoles) {
		return nil, apperrors.ErrContentForbidden
	}

	wasPublished := content.Status == models.ContentStatusPublished

	if req.Title != nil {
		content.Title = *req.Title
	}
	if req.Body != nil {
		content.Body = *req.Body
	}
	if req.MediaURL != nil {
		content.MediaURL = *req.MediaURL
	}
	if req.ContentType != nil {
		content.ContentType = models.ContentType(*req.ContentType)
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(db, *req.CategoryID); err != nil {
			if apperrors.Is(err, repositories.ErrCategoryNotFound) {
				return nil, apperrors.ErrCategoryNotFound
			}
			return nil, apperrors.InternalError(err)
		}
		content.CategoryID = req.CategoryID
	}
	if req.Status != nil {
		content.Status = models.ContentStatus(*req.Status)
	}

	if err := s.contentRepo.Update(db, content); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Fan-out fires on the transition into Published only. Editing an
	// already published item does not re-notify subscribers.
	if content.Status == models.ContentStatusPublished && !wasPublished {
		s.notificationSvc.NotifySubscribers(ctx, db, content, actorID)
	}

	return toContentResponse(content), nil
}

func (s *contentService) Delete(ctx context.Context, db *gorm.DB, actorID string, actorRoles []string, contentID string) error {
	content, err := s.findContent(db, contentID)
	if err != nil {
		return err
	}
	if content.AuthorID != actorID && !auth.IsAdmin(actorRoles) {
		return apperrors.ErrContentForbidden
	}

	if err := s.contentRepo.Delete(db, content.ID); err != nil {
		return apperrors.InternalError(err)
	}

	s.auditSvc.Record(ctx, db, actorID, "content.delete", "content", content.ID,
		map[string]interface{}{"title": content.Title})
	return nil
}

func (s *contentService) Get(db *gorm.DB, viewerID string, viewerRoles []string, contentID string) (*dto.ContentResponse, error) {
	content, err := s.findContent(db, contentID)
	if err != nil {
		return nil, err
	}
	// Unpublished items stay invisible to everyone except the author and
	// admins; a 404 avoids confirming the item exists.
	if content.Status != models.ContentStatusPublished &&
		content.AuthorID != viewerID && !auth.IsAdmin(viewerRoles) {
		return nil, apperrors.ErrContentNotFound
	}
	return toContentResponse(content), nil
}

func (s *contentService) List(db *gorm.DB, viewerRoles []string, page, pageSize int) (*dto.ContentListResponse, error) {
	scoped := db
	if !auth.IsAdmin(viewerRoles) {
		scoped = db.Where("status = ?", models.ContentStatusPublished)
	}

	items, total, err := s.contentRepo.List(scoped, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ContentResponse, 0, len(items))
	for i := range items {
		responses = append(responses, *toContentResponse(&items[i]))
	}
	return &dto.ContentListResponse{
		Items:   responses,
		Page:    page,
		PerPage: pageSize,
		Total:   total,
	}, nil
}

func (s *contentService) Flag(ctx context.Context, db *gorm.DB, actorID, contentID, reason string) (*dto.ContentResponse, error) {
	if reason == "" {
		return nil, apperrors.ErrFlagReasonRequired
	}

	content, err := s.findContent(db, contentID)
	if err != nil {
		return nil, err
	}

	content.Status = models.ContentStatusFlagged
	if err := s.contentRepo.Update(db, content); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.auditSvc.Record(ctx, db, actorID, "content.flag", "content", content.ID,
		map[string]interface{}{"reason": reason})
	return toContentResponse(content), nil
}

func (s *contentService) React(ctx context.Context, db *gorm.DB, userID, contentID string, reaction models.ReactionType) error {
	content, err := s.findContent(db, contentID)
	if err != nil {
		return err
	}
	if content.Status != models.ContentStatusPublished {
		return apperrors.ErrContentNotFound
	}

	r := &models.Reaction{UserID: userID, ContentID: content.ID, Type: reaction}
	created, err := s.reactionRepo.Upsert(db, r)
	if err != nil {
		return apperrors.InternalError(err)
	}

	// Only a fresh like pings the author; flapping the reaction type
	// back and forth does not.
	if created && reaction == models.ReactionLike {
		s.notificationSvc.NotifyContentAuthor(ctx, db, content, userID,
			fmt.Sprintf("New like on: %s", content.Title))
	}
	return nil
}

func (s *contentService) RemoveReaction(db *gorm.DB, userID, contentID string) error {
	if err := s.reactionRepo.Delete(db, userID, contentID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *contentService) findContent(db *gorm.DB, id string) (*models.Content, error) {
	content, err := s.contentRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrContentNotFound) {
			return nil, apperrors.ErrContentNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return content, nil
}

func toContentResponse(c *models.Content) *dto.ContentResponse {
	return &dto.ContentResponse{
		ID:          c.ID,
		Title:       c.Title,
		Body:        c.Body,
		MediaURL:    c.MediaURL,
		ContentType: c.ContentType,
		Status:      c.Status,
		AuthorID:    c.AuthorID,
		CategoryID:  c.CategoryID,
		CreatedAt:   c.CreatedAt,
	}
}
