package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskforce/internal/dto"
	apierrors "taskforce/internal/errors"
	"taskforce/internal/middleware"
	"taskforce/internal/models"
	"taskforce/internal/services"
)

// EmployeeHandler serves the employee surface: own tasks, progress updates
// and the history ledger.
type EmployeeHandler struct {
	taskService *services.TaskService
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(taskService *services.TaskService) *EmployeeHandler {
	return &EmployeeHandler{
		taskService: taskService,
	}
}

// ListTasks returns the employee's own tasks.
func (h *EmployeeHandler) ListTasks(c *gin.Context) {
	employee, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	tasks, err := h.taskService.ListForEmployee(employee.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
	})
}

// UpdateTaskForm returns the task and the statuses it can be set to.
func (h *EmployeeHandler) UpdateTaskForm(c *gin.Context) {
	employee, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetForEmployee(employee, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"task": dto.ToTaskDTO(*task),
		"statuses": []models.TaskStatus{
			models.TaskStatusPending,
			models.TaskStatusInProgress,
			models.TaskStatusCompleted,
		},
	})
}

// UpdateTask records a progress update on one of the employee's own tasks.
func (h *EmployeeHandler) UpdateTask(c *gin.Context) {
	employee, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Status     models.TaskStatus `form:"status" binding:"required"`
		HoursSpent int               `form:"hours_spent" binding:"min=0"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	_, err := h.taskService.UpdateStatus(employee, taskID, services.UpdateStatusInput{
		Status:     req.Status,
		HoursSpent: req.HoursSpent,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/employee/tasks")
}

// TaskHistory returns one of the employee's tasks with its ledger.
func (h *EmployeeHandler) TaskHistory(c *gin.Context) {
	employee, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, history, err := h.taskService.History(employee, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TaskHistoryResponse{
		Task:    dto.ToTaskDTO(*task),
		History: dto.ToTaskHistoryDTOs(history),
	})
}
