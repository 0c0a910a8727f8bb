package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pressroom_backend/internal/auth"
	"pressroom_backend/internal/middleware"
	"pressroom_backend/internal/models"
	"pressroom_backend/internal/repositories"
	"pressroom_backend/internal/services"
	"pressroom_backend/internal/services/dto"
)

type ContentHandler struct {
	*BaseHandler
	contentService services.ContentService
	tokens         *auth.TokenManager
	roleRepo       repositories.RoleRepository
}

func NewContentHandler(base *BaseHandler, contentService services.ContentService, tokens *auth.TokenManager, roleRepo repositories.RoleRepository) *ContentHandler {
	return &ContentHandler{
		BaseHandler:    base,
		contentService: contentService,
		tokens:         tokens,
		roleRepo:       roleRepo,
	}
}

func (h *ContentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	content := rg.Group("/content")
	content.Use(middleware.AuthMiddleware(h.tokens))
	content.Use(middleware.LoadRoles(h.roleRepo))
	{
		content.POST("", h.Create)
		content.GET("", h.List)
		content.GET("/:id", h.Get)
		content.PUT("/:id", h.Update)
		content.DELETE("/:id", h.Delete)

		content.POST("/:id/reactions", h.React)
		content.DELETE("/:id/reactions", h.RemoveReaction)
	}

	admin := rg.Group("/content")
	admin.Use(middleware.AuthMiddleware(h.tokens))
	admin.Use(middleware.RequireRoles(h.roleRepo, auth.RoleAdmin))
	{
		admin.POST("/:id/flag", h.Flag)
	}
}

func (h *ContentHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateContentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.contentService.Create(c.Request.Context(), h.GetDB(c), userID, h.UserRoles(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ContentHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.contentService.Get(h.GetDB(c), userID, h.UserRoles(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ContentHandler) List(c *gin.Context) {
	page, pageSize := h.ParsePagination(c)

	resp, err := h.contentService.List(h.GetDB(c), h.UserRoles(c), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ContentHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateContentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.contentService.Update(c.Request.Context(), h.GetDB(c), userID, h.UserRoles(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ContentHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.contentService.Delete(c.Request.Context(), h.GetDB(c), userID, h.UserRoles(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Content deleted"})
}

func (h *ContentHandler) Flag(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.FlagContentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.contentService.Flag(c.Request.Context(), h.GetDB(c), userID, c.Param("id"), req.Reason)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ContentHandler) React(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ReactionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.contentService.React(c.Request.Context(), h.GetDB(c), userID, c.Param("id"), models.ReactionType(req.Type)); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reaction saved"})
}

func (h *ContentHandler) RemoveReaction(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.contentService.RemoveReaction(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reaction removed"})
}
