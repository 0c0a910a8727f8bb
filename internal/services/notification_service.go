package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"pressroom_backend/internal/logger"
	"pressroom_backend/internal/models"
	"pressroom_backend/internal/repositories"
	"pressroom_backend/internal/services/dto"
	"pressroom_backend/pkg/apperrors"
)

type NotificationService interface {
	// NotifySubscribers fans a publish event out to every subscriber of
	// the content's category, excluding the acting user. Best effort: a
	// failure is logged and never surfaced to the publish path.
	NotifySubscribers(ctx context.Context, db *gorm.DB, content *models.Content, actorID string)
	// NotifyContentAuthor tells the author about activity on their item
	// (new comment, new like). Self-activity is skipped. Best effort.
	NotifyContentAuthor(ctx context.Context, db *gorm.DB, content *models.Content, actorID, message string)
	List(db *gorm.DB, userID string, page, pageSize int) (*dto.NotificationListResponse, error)
	MarkRead(db *gorm.DB, userID, notificationID string) (*dto.NotificationResponse, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	subscriptionRepo repositories.SubscriptionRepository
	categoryRepo     repositories.CategoryRepository
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	categoryRepo repositories.CategoryRepository,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		subscriptionRepo: subscriptionRepo,
		categoryRepo:     categoryRepo,
	}
}

func (s *notificationService) NotifySubscribers(ctx context.Context, db *gorm.DB, content *models.Content, actorID string) {
	if content.CategoryID == nil {
		return
	}

	category, err := s.categoryRepo.FindByID(db, *content.CategoryID)
	if err != nil {
		logger.CtxError(ctx, "fan-out skipped: category lookup failed",
			"content_id", content.ID, "category_id", *content.CategoryID, "error", err)
		return
	}

	subs, err := s.subscriptionRepo.ListByCategory(db, category.ID)
	if err != nil {
		logger.CtxError(ctx, "fan-out skipped: subscriber lookup failed",
			"category_id", category.ID, "error", err)
		return
	}

	message := fmt.Sprintf("New %s in %s: %s", content.ContentType, category.Name, content.Title)

	notifications := make([]models.Notification, 0, len(subs))
	for _, sub := range subs {
		if sub.UserID == actorID {
			continue
		}
		contentID := content.ID
		notifications = append(notifications, models.Notification{
			UserID:    sub.UserID,
			ContentID: &contentID,
			Message:   message,
		})
	}
	if len(notifications) == 0 {
		return
	}

	if err := s.notificationRepo.CreateBatch(db, notifications); err != nil {
		logger.CtxError(ctx, "fan-out failed", "content_id", content.ID, "error", err)
		return
	}
	logger.CtxInfo(ctx, "publish fan-out delivered",
		"content_id", content.ID, "category", category.Name, "recipients", len(notifications))
}

func (s *notificationService) NotifyContentAuthor(ctx context.Context, db *gorm.DB, content *models.Content, actorID, message string) {
	if content.AuthorID == actorID {
		return
	}

	contentID := content.ID
	notifications := []models.Notification{{
		UserID:    content.AuthorID,
		ContentID: &contentID,
		Message:   message,
	}}
	if err := s.notificationRepo.CreateBatch(db, notifications); err != nil {
		logger.CtxError(ctx, "author notification failed", "content_id", content.ID, "error", err)
	}
}

func (s *notificationService) List(db *gorm.DB, userID string, page, pageSize int) (*dto.NotificationListResponse, error) {
	notifications, total, err := s.notificationRepo.ListByUser(db, userID, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		items = append(items, toNotificationResponse(&notifications[i]))
	}
	return &dto.NotificationListResponse{
		Items:   items,
		Page:    page,
		PerPage: pageSize,
		Total:   total,
	}, nil
}

// MarkRead is idempotent: marking an already read notification is a no-op
// success.
func (s *notificationService) MarkRead(db *gorm.DB, userID, notificationID string) (*dto.NotificationResponse, error) {
	notification, err := s.notificationRepo.FindByIDAndUser(db, notificationID, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if !notification.IsRead {
		if err := s.notificationRepo.MarkRead(db, notification); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	resp := toNotificationResponse(notification)
	return &resp, nil
}

func toNotificationResponse(n *models.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		ContentID: n.ContentID,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
