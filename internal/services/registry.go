package services

import (
	"time"

	"pressroom_backend/internal/auth"
	"pressroom_backend/internal/config"
	"pressroom_backend/internal/email"
	"pressroom_backend/internal/repositories"
)

// ServiceContainer wires every service over the shared repository set.
type ServiceContainer struct {
	AuthService         AuthService
	OAuthService        OAuthService
	UserService         UserService
	ContentService      ContentService
	CommentService      CommentService
	CategoryService     CategoryService
	NotificationService NotificationService
	AuditService        AuditService

	RoleRepo repositories.RoleRepository
}

func NewServiceContainer(cfg *config.Config, mailer email.Sender) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	roleRepo := repositories.NewRoleRepository()
	refreshRepo := repositories.NewRefreshTokenRepository()
	resetRepo := repositories.NewPasswordResetTokenRepository()
	verifyRepo := repositories.NewEmailVerificationTokenRepository()
	categoryRepo := repositories.NewCategoryRepository()
	contentRepo := repositories.NewContentRepository()
	commentRepo := repositories.NewCommentRepository()
	subscriptionRepo := repositories.NewSubscriptionRepository()
	notificationRepo := repositories.NewNotificationRepository()
	reactionRepo := repositories.NewReactionRepository()
	auditRepo := repositories.NewAuditRepository()

	tokens := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTTLMinutes)*time.Minute)
	refreshTTL := time.Duration(cfg.JWT.RefreshTTLHours) * time.Hour
	editWindow := time.Duration(cfg.Comments.EditWindowMinutes) * time.Minute

	auditSvc := NewAuditService(auditRepo)
	notificationSvc := NewNotificationService(notificationRepo, subscriptionRepo, categoryRepo)
	authSvc := NewAuthService(userRepo, roleRepo, refreshRepo, resetRepo, verifyRepo, tokens, refreshTTL, mailer)

	return &ServiceContainer{
		AuthService:         authSvc,
		OAuthService:        NewOAuthService(cfg, userRepo, roleRepo, authSvc),
		UserService:         NewUserService(userRepo, roleRepo, auditSvc),
		ContentService:      NewContentService(contentRepo, categoryRepo, reactionRepo, notificationSvc, auditSvc),
		CommentService:      NewCommentService(commentRepo, contentRepo, notificationSvc, auditSvc, editWindow),
		CategoryService:     NewCategoryService(categoryRepo, subscriptionRepo, auditSvc),
		NotificationService: notificationSvc,
		AuditService:        auditSvc,
		RoleRepo:            roleRepo,
	}
}
