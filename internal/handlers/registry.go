package handlers

import (
	"pressroom_backend/internal/auth"
	"pressroom_backend/internal/services"
	"pressroom_backend/internal/validator"
)

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	OAuthHandler        *OAuthHandler
	UserHandler         *UserHandler
	ContentHandler      *ContentHandler
	CommentHandler      *CommentHandler
	CategoryHandler     *CategoryHandler
	NotificationHandler *NotificationHandler
	AuditHandler        *AuditHandler
}

func NewAppHandlers(svc *services.ServiceContainer, tokens *auth.TokenManager) *AppHandlers {
	base := NewBaseHandler(validator.New())

	return &AppHandlers{
		AuthHandler:         NewAuthHandler(base, svc.AuthService, tokens),
		OAuthHandler:        NewOAuthHandler(base, svc.OAuthService),
		UserHandler:         NewUserHandler(base, svc.UserService, tokens, svc.RoleRepo),
		ContentHandler:      NewContentHandler(base, svc.ContentService, tokens, svc.RoleRepo),
		CommentHandler:      NewCommentHandler(base, svc.CommentService, tokens, svc.RoleRepo),
		CategoryHandler:     NewCategoryHandler(base, svc.CategoryService, tokens, svc.RoleRepo),
		NotificationHandler: NewNotificationHandler(base, svc.NotificationService, tokens),
		AuditHandler:        NewAuditHandler(base, svc.AuditService, tokens, svc.RoleRepo),
	}
}
