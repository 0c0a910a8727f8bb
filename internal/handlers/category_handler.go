package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pressroom_backend/internal/auth"
	"pressroom_backend/internal/middleware"
	"pressroom_backend/internal/repositories"
	"pressroom_backend/internal/services"
	"pressroom_backend/internal/services/dto"
)

type CategoryHandler struct {
	*BaseHandler
	categoryService services.CategoryService
	tokens          *auth.TokenManager
	roleRepo        repositories.RoleRepository
}

func NewCategoryHandler(base *BaseHandler, categoryService services.CategoryService, tokens *auth.TokenManager, roleRepo repositories.RoleRepository) *CategoryHandler {
	return &CategoryHandler{
		BaseHandler:     base,
		categoryService: categoryService,
		tokens:          tokens,
		roleRepo:        roleRepo,
	}
}

func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	{
		categories.GET("", h.List)
		categories.GET("/:id", h.Get)
	}

	subs := rg.Group("/categories")
	subs.Use(middleware.AuthMiddleware(h.tokens))
	{
		subs.POST("/:id/subscribe", h.Subscribe)
		subs.POST("/:id/unsubscribe", h.Unsubscribe)
	}

	writers := rg.Group("/categories")
	writers.Use(middleware.AuthMiddleware(h.tokens))
	writers.Use(middleware.RequireRoles(h.roleRepo, auth.RoleAdmin, auth.RoleTechWriter))
	{
		writers.POST("", h.Create)
		writers.PUT("/:id", h.Update)
		writers.DELETE("/:id", h.Delete)
	}
}

func (h *CategoryHandler) List(c *gin.Context) {
	items, err := h.categoryService.List(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": items})
}

func (h *CategoryHandler) Get(c *gin.Context) {
	resp, err := h.categoryService.Get(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CategoryRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.categoryService.Create(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.categoryService.Update(c.Request.Context(), h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

func (h *CategoryHandler) Subscribe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.categoryService.Subscribe(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Subscribed"})
}

func (h *CategoryHandler) Unsubscribe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.categoryService.Unsubscribe(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unsubscribed"})
}
