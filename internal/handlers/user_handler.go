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

type UserHandler struct {
	*BaseHandler
	userService services.UserService
	tokens      *auth.TokenManager
	roleRepo    repositories.RoleRepository
}

func NewUserHandler(base *BaseHandler, userService services.UserService, tokens *auth.TokenManager, roleRepo repositories.RoleRepository) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
		tokens:      tokens,
		roleRepo:    roleRepo,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	profile := rg.Group("/profile")
	profile.Use(middleware.AuthMiddleware(h.tokens))
	{
		profile.GET("", h.GetOwnProfile)
		profile.PUT("", h.UpdateOwnProfile)
	}

	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware(h.tokens))
	{
		users.GET("/:id/profile", h.GetProfile)
	}

	admin := rg.Group("/users")
	admin.Use(middleware.AuthMiddleware(h.tokens))
	admin.Use(middleware.RequireRoles(h.roleRepo, auth.RoleAdmin))
	{
		admin.POST("/:id/promote/:role", h.Promote)
		admin.POST("/:id/deactivate", h.Deactivate)
	}
}

func (h *UserHandler) GetOwnProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.userService.GetProfile(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	resp, err := h.userService.GetProfile(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) UpdateOwnProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.userService.UpdateProfile(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Promote(c *gin.Context) {
	actorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.userService.Promote(c.Request.Context(), h.GetDB(c), actorID, c.Param("id"), c.Param("role"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Deactivate(c *gin.Context) {
	actorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.userService.Deactivate(c.Request.Context(), h.GetDB(c), actorID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deactivated"})
}
