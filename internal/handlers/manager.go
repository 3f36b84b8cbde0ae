package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskforce/internal/dto"
	apierrors "taskforce/internal/errors"
	"taskforce/internal/middleware"
	"taskforce/internal/services"
)

// ManagerHandler serves the manager surface: employee accounts, task
// assignment and the team view.
type ManagerHandler struct {
	userService *services.UserService
	taskService *services.TaskService
}

// NewManagerHandler creates a new ManagerHandler.
func NewManagerHandler(userService *services.UserService, taskService *services.TaskService) *ManagerHandler {
	return &ManagerHandler{
		userService: userService,
		taskService: taskService,
	}
}

// CreateEmployeeForm returns the metadata the create-employee form needs.
func (h *ManagerHandler) CreateEmployeeForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"action": "/manager/create_employee",
	})
}

// CreateEmployee creates an employee account owned by the current manager.
func (h *ManagerHandler) CreateEmployee(c *gin.Context) {
	manager, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	_, err := h.userService.CreateEmployee(manager, services.CreateUserInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/manager/dashboard")
}

// AssignTaskForm returns the employees the manager may assign to.
func (h *ManagerHandler) AssignTaskForm(c *gin.Context) {
	manager, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	employees, err := h.taskService.AssignableEmployees(manager.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list employees")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employees": dto.ToUserDTOs(employees),
	})
}

// AssignTask creates a task for one of the manager's employees.
func (h *ManagerHandler) AssignTask(c *gin.Context) {
	manager, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type AssignTaskRequest struct {
		Title        string `form:"title" binding:"required"`
		Description  string `form:"description"`
		AssignedToID uint64 `form:"assigned_to_id" binding:"required"`
	}

	var req AssignTaskRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	_, err := h.taskService.Assign(manager, services.AssignTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		AssignedToID: req.AssignedToID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/manager/dashboard")
}

// ReassignTaskForm returns the task and the employees it could move to.
func (h *ManagerHandler) ReassignTaskForm(c *gin.Context) {
	manager, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetForManager(manager, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	employees, err := h.taskService.AssignableEmployees(manager.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list employees")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"task":      dto.ToTaskDTO(*task),
		"employees": dto.ToUserDTOs(employees),
	})
}

// ReassignTask moves a task to another of the manager's employees.
func (h *ManagerHandler) ReassignTask(c *gin.Context) {
	manager, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type ReassignTaskRequest struct {
		NewEmployeeID uint64 `form:"new_employee_id" binding:"required"`
	}

	var req ReassignTaskRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	if _, err := h.taskService.Reassign(manager, taskID, req.NewEmployeeID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/manager/dashboard")
}

// EmployeesTasks returns each of the manager's employees with their tasks.
func (h *ManagerHandler) EmployeesTasks(c *gin.Context) {
	manager, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	team, err := h.taskService.TeamTasks(manager.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to load team")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"team": dto.ToEmployeeTasksDTOs(team),
	})
}

// Dashboard returns the manager dashboard aggregates.
func (h *ManagerHandler) Dashboard(c *gin.Context) {
	manager, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	stats, err := h.userService.GetManagerDashboard(manager.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to load dashboard")
		return
	}

	c.JSON(http.StatusOK, dto.ToManagerDashboardDTO(*stats))
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrEmployeeNotFound):
		// Out-of-scope and absent are deliberately the same answer.
		apierrors.NotFound(c, "Not found")
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrNegativeHours):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
