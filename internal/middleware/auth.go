package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pressroom_backend/internal/auth"
	"pressroom_backend/internal/logger"
	"pressroom_backend/internal/repositories"
	"pressroom_backend/pkg/contextkeys"
)

// AuthMiddleware validates the bearer token and stores the caller's id
// on the gin and request contexts. Tokens carry no role claims; roles
// are resolved per request by RequireRoles.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.ParseAccessToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(string(contextkeys.UserIDContextKey), claims.UserID)
		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireRoles loads the caller's roles from the database and rejects
// the request unless at least one of the given roles is held. Role
// changes therefore take effect immediately, not at token renewal.
func RequireRoles(roleRepo repositories.RoleRepository, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(string(contextkeys.UserIDContextKey))
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		db, ok := c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		names, err := roleRepo.RoleNamesForUser(db, userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		if !auth.HasAnyRole(names, roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions."})
			return
		}

		c.Set(string(contextkeys.UserRolesContextKey), names)
		c.Next()
	}
}

// LoadRoles attaches the caller's role names without enforcing any. Used
// on routes whose behavior varies by role (content visibility).
func LoadRoles(roleRepo repositories.RoleRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(string(contextkeys.UserIDContextKey))
		if userID == "" {
			c.Next()
			return
		}
		db, ok := c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)
		if !ok {
			c.Next()
			return
		}
		if names, err := roleRepo.RoleNamesForUser(db, userID); err == nil {
			c.Set(string(contextkeys.UserRolesContextKey), names)
		}
		c.Next()
	}
}
