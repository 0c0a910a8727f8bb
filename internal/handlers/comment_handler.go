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

type CommentHandler struct {
	*BaseHandler
	commentService services.CommentService
	tokens         *auth.TokenManager
	roleRepo       repositories.RoleRepository
}

func NewCommentHandler(base *BaseHandler, commentService services.CommentService, tokens *auth.TokenManager, roleRepo repositories.RoleRepository) *CommentHandler {
	return &CommentHandler{
		BaseHandler:    base,
		commentService: commentService,
		tokens:         tokens,
		roleRepo:       roleRepo,
	}
}

func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	comments := rg.Group("/content/:id/comments")
	comments.Use(middleware.AuthMiddleware(h.tokens))
	comments.Use(middleware.LoadRoles(h.roleRepo))
	{
		comments.POST("", h.Create)
		comments.GET("", h.ListTree)
		comments.PUT("/:commentID", h.Update)
		comments.DELETE("/:commentID", h.Delete)
	}
}

func (h *CommentHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.commentService.Create(c.Request.Context(), h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CommentHandler) ListTree(c *gin.Context) {
	tree, err := h.commentService.ListTree(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": tree})
}

func (h *CommentHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.commentService.Update(h.GetDB(c), userID, c.Param("id"), c.Param("commentID"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	err := h.commentService.Delete(c.Request.Context(), h.GetDB(c), userID, h.UserRoles(c), c.Param("id"), c.Param("commentID"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
