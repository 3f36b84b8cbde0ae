package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"taskforce/internal/authz"
	"taskforce/internal/constants"
	apierrors "taskforce/internal/errors"
	"taskforce/internal/models"
	"taskforce/internal/services"
)

// RequireAuth resolves the bearer token carried in the session cookie to a
// user. Order matters: revocation is checked before signature so a revoked
// token is dead even while unexpired.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(constants.AccessTokenCookie)
		if err != nil || raw == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(raw, constants.BearerPrefix)
		if tokenString == raw {
			apierrors.Unauthorized(c, "Malformed session cookie")
			c.Abort()
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyToken, tokenString)
		c.Next()
	}
}

// Require gates a route on the permission matrix: the current user's role
// must permit the action. Runs after RequireAuth.
func Require(action authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := GetUser(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !authz.Can(user.Role, action) {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUser retrieves the current user from context.
func GetUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}

	user, ok := value.(*models.User)
	if !ok {
		return nil, false
	}
	return user, true
}

// GetToken retrieves the raw bearer token from context.
func GetToken(c *gin.Context) (string, bool) {
	value, exists := c.Get(constants.ContextKeyToken)
	if !exists {
		return "", false
	}

	tokenString, ok := value.(string)
	if !ok {
		return "", false
	}
	return tokenString, true
}
