package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pressroom_backend/internal/services"
	"pressroom_backend/pkg/apperrors"
)

type OAuthHandler struct {
	*BaseHandler
	oauthService services.OAuthService
}

func NewOAuthHandler(base *BaseHandler, oauthService services.OAuthService) *OAuthHandler {
	return &OAuthHandler{BaseHandler: base, oauthService: oauthService}
}

func (h *OAuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	oauth := rg.Group("/auth")
	{
		oauth.GET("/login/:provider", h.Login)
		oauth.GET("/callback/:provider", h.Callback)
	}
}

// Login redirects the browser to the provider's consent page.
func (h *OAuthHandler) Login(c *gin.Context) {
	state := uuid.NewString()
	url, err := h.oauthService.AuthURL(c.Param("provider"), state)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// Callback receives the provider redirect and exchanges the code for a
// local session.
func (h *OAuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing authorization code"))
		return
	}

	resp, err := h.oauthService.Exchange(c.Request.Context(), h.GetDB(c), c.Param("provider"), code)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
