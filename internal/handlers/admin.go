package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskforce/internal/dto"
	apierrors "taskforce/internal/errors"
	"taskforce/internal/middleware"
	"taskforce/internal/services"
	"taskforce/internal/utils"
)

// AdminHandler serves the admin surface: manager accounts and the admin
// dashboard.
type AdminHandler struct {
	userService *services.UserService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(userService *services.UserService) *AdminHandler {
	return &AdminHandler{
		userService: userService,
	}
}

// CreateUserRequest is the account-creation form, shared by the admin and
// manager surfaces.
type CreateUserRequest struct {
	Name     string `form:"name" binding:"required"`
	Username string `form:"username" binding:"required,min=3,max=50"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// CreateManagerForm returns the metadata the create-manager form needs.
func (h *AdminHandler) CreateManagerForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"action": "/admin/create_manager",
	})
}

// CreateManager creates a manager account owned by the current admin.
func (h *AdminHandler) CreateManager(c *gin.Context) {
	admin, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	_, err := h.userService.CreateManager(admin, services.CreateUserInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/admin/dashboard")
}

// ListManagers returns manager accounts, paginated.
func (h *AdminHandler) ListManagers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	managers, total, err := h.userService.ListManagers(params)
	if err != nil {
		apierrors.InternalError(c, "Failed to list managers")
		return
	}

	c.JSON(http.StatusOK, dto.ManagerListResponse{
		Managers: dto.ToUserDTOs(managers),
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetManager returns one manager with the employees it created.
func (h *AdminHandler) GetManager(c *gin.Context) {
	managerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	manager, employees, err := h.userService.GetManager(managerID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ManagerDetailResponse{
		Manager:   dto.ToUserDTO(*manager),
		Employees: dto.ToUserDTOs(employees),
	})
}

// RemoveManager deletes a manager and transitively its employees and tasks.
func (h *AdminHandler) RemoveManager(c *gin.Context) {
	managerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.userService.RemoveManager(managerID); err != nil {
		respondUserError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/admin/managers")
}

// Dashboard returns the admin dashboard aggregates.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.userService.GetAdminDashboard()
	if err != nil {
		apierrors.InternalError(c, "Failed to load dashboard")
		return
	}

	c.JSON(http.StatusOK, dto.ToAdminDashboardDTO(*stats))
}

func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserConflict):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrNameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrManagerNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
