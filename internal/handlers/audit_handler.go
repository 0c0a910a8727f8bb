package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pressroom_backend/internal/auth"
	"pressroom_backend/internal/middleware"
	"pressroom_backend/internal/repositories"
	"pressroom_backend/internal/services"
)

type AuditHandler struct {
	*BaseHandler
	auditService services.AuditService
	tokens       *auth.TokenManager
	roleRepo     repositories.RoleRepository
}

func NewAuditHandler(base *BaseHandler, auditService services.AuditService, tokens *auth.TokenManager, roleRepo repositories.RoleRepository) *AuditHandler {
	return &AuditHandler{
		BaseHandler:  base,
		auditService: auditService,
		tokens:       tokens,
		roleRepo:     roleRepo,
	}
}

func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/audit")
	admin.Use(middleware.AuthMiddleware(h.tokens))
	admin.Use(middleware.RequireRoles(h.roleRepo, auth.RoleAdmin))
	{
		admin.GET("/logs", h.List)
	}
}

func (h *AuditHandler) List(c *gin.Context) {
	entries, err := h.auditService.List(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
