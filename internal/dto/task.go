package dto

import (
	"time"

	"taskforce/internal/models"
	"taskforce/internal/services"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	AssignedToID uint64            `json:"assigned_to_id"`
	AssignedByID uint64            `json:"assigned_by_id"`
	Status       models.TaskStatus `json:"status"`
	HoursSpent   int               `json:"hours_spent"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	AssignedTo   *UserDTO          `json:"assigned_to,omitempty"`
}

// TaskHistoryDTO represents one ledger row in API responses
type TaskHistoryDTO struct {
	ID           uint64            `json:"id"`
	TaskID       uint64            `json:"task_id"`
	UpdatedByID  uint64            `json:"updated_by_id"`
	StatusBefore models.TaskStatus `json:"status_before"`
	StatusAfter  models.TaskStatus `json:"status_after"`
	HoursSpent   int               `json:"hours_spent"`
	Timestamp    time.Time         `json:"timestamp"`
}

// TaskHistoryResponse represents a task together with its ledger
type TaskHistoryResponse struct {
	Task    TaskDTO          `json:"task"`
	History []TaskHistoryDTO `json:"history"`
}

// EmployeeTasksDTO pairs an employee with their tasks in the team view
type EmployeeTasksDTO struct {
	Employee UserDTO   `json:"employee"`
	Tasks    []TaskDTO `json:"tasks"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		AssignedToID: task.AssignedToID,
		AssignedByID: task.AssignedByID,
		Status:       task.Status,
		HoursSpent:   task.HoursSpent,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}

	// Include assignee if preloaded
	if task.AssignedTo.ID != 0 {
		assignee := ToUserDTO(task.AssignedTo)
		dto.AssignedTo = &assignee
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = ToTaskDTO(t)
	}
	return dtos
}

// ToTaskHistoryDTO converts a TaskHistory model to TaskHistoryDTO
func ToTaskHistoryDTO(h models.TaskHistory) TaskHistoryDTO {
	return TaskHistoryDTO{
		ID:           h.ID,
		TaskID:       h.TaskID,
		UpdatedByID:  h.UpdatedByID,
		StatusBefore: h.StatusBefore,
		StatusAfter:  h.StatusAfter,
		HoursSpent:   h.HoursSpent,
		Timestamp:    h.CreatedAt,
	}
}

// ToTaskHistoryDTOs converts a slice of history rows
func ToTaskHistoryDTOs(history []models.TaskHistory) []TaskHistoryDTO {
	dtos := make([]TaskHistoryDTO, len(history))
	for i, h := range history {
		dtos[i] = ToTaskHistoryDTO(h)
	}
	return dtos
}

// ToEmployeeTasksDTOs converts the team view aggregate
func ToEmployeeTasksDTOs(team []services.EmployeeTasks) []EmployeeTasksDTO {
	dtos := make([]EmployeeTasksDTO, len(team))
	for i, et := range team {
		dtos[i] = EmployeeTasksDTO{
			Employee: ToUserDTO(et.Employee),
			Tasks:    ToTaskDTOs(et.Tasks),
		}
	}
	return dtos
}
