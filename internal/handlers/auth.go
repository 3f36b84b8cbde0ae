package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskforce/internal/constants"
	apierrors "taskforce/internal/errors"
	"taskforce/internal/middleware"
	"taskforce/internal/models"
	"taskforce/internal/services"
)

// AuthHandler coordinates login, logout and the role dispatch.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login authenticates credentials, sets the session cookie and redirects to
// the role dispatch.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `form:"username" binding:"required"`
		Password string `form:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Username and password are required")
		return
	}

	_, signed, err := h.authService.Login(services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			apierrors.Unauthorized(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.SetCookie(
		constants.AccessTokenCookie,
		constants.BearerPrefix+signed,
		int(constants.AccessTokenLifetime.Seconds()),
		"/",
		"",
		false,
		true,
	)
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout revokes the current token and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenString, exists := middleware.GetToken(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), tokenString); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.SetCookie(constants.AccessTokenCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

// Dashboard redirects to the landing page for the current user's role.
func (h *AuthHandler) Dashboard(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	switch user.Role {
	case models.RoleAdmin:
		c.Redirect(http.StatusSeeOther, "/admin/dashboard")
	case models.RoleManager:
		c.Redirect(http.StatusSeeOther, "/manager/dashboard")
	case models.RoleEmployee:
		c.Redirect(http.StatusSeeOther, "/employee/tasks")
	default:
		apierrors.Forbidden(c, "")
	}
}
