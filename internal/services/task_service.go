package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"taskforce/internal/models"
	"taskforce/internal/repository"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrTitleRequired    = errors.New("title is required")
	ErrInvalidStatus    = errors.New("invalid task status")
	ErrNegativeHours    = errors.New("hours spent cannot be negative")
)

// TaskService handles task assignment and the lifecycle ledger. Ownership is
// re-derived from the store on every mutation: a task or employee outside the
// caller's scope surfaces as not-found, never as forbidden.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// AssignTaskInput represents input for creating a task.
type AssignTaskInput struct {
	Title        string
	Description  string
	AssignedToID uint64
}

// Assign creates a task for an employee the manager created. New tasks start
// pending with zero hours.
func (s *TaskService) Assign(manager *models.User, input AssignTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	employee, err := s.userRepo.FindEmployeeOfManager(input.AssignedToID, manager.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}

	task := &models.Task{
		Title:        input.Title,
		Description:  input.Description,
		AssignedToID: employee.ID,
		AssignedByID: manager.ID,
		Status:       models.TaskStatusPending,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// GetForManager returns a task the manager assigned, for the reassign form.
func (s *TaskService) GetForManager(manager *models.User, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByIDForManager(taskID, manager.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// Reassign moves a task the manager assigned to another employee the manager
// created. Only the assignee changes: status and hours carry over, and no
// history row is written.
func (s *TaskService) Reassign(manager *models.User, taskID, newEmployeeID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByIDForManager(taskID, manager.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	employee, err := s.userRepo.FindEmployeeOfManager(newEmployeeID, manager.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}

	if err := s.taskRepo.Reassign(task, employee.ID); err != nil {
		return nil, fmt.Errorf("failed to reassign task: %w", err)
	}

	return task, nil
}

// UpdateStatusInput represents an employee's progress update.
type UpdateStatusInput struct {
	Status     models.TaskStatus
	HoursSpent int
}

// UpdateStatus records the transition in the history ledger and mutates the
// task, atomically. Transitions are unrestricted: the assigned employee may
// move a task from any status to any other, including backwards. HoursSpent
// overwrites the stored value rather than accumulating.
func (s *TaskService) UpdateStatus(employee *models.User, taskID uint64, input UpdateStatusInput) (*models.Task, error) {
	if !models.ValidTaskStatus(input.Status) {
		return nil, ErrInvalidStatus
	}
	if input.HoursSpent < 0 {
		return nil, ErrNegativeHours
	}

	task, err := s.taskRepo.FindByIDForEmployee(taskID, employee.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.UpdateStatusWithHistory(task, input.Status, input.HoursSpent, employee.ID); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// ListForEmployee lists the employee's own tasks.
func (s *TaskService) ListForEmployee(employeeID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByAssignee(employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetForEmployee returns one of the employee's own tasks.
func (s *TaskService) GetForEmployee(employee *models.User, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByIDForEmployee(taskID, employee.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// History returns an employee-owned task with its ledger in chronological
// order.
func (s *TaskService) History(employee *models.User, taskID uint64) (*models.Task, []models.TaskHistory, error) {
	task, err := s.GetForEmployee(employee, taskID)
	if err != nil {
		return nil, nil, err
	}

	history, err := s.taskRepo.ListHistory(task.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list history: %w", err)
	}

	return task, history, nil
}

// EmployeeTasks pairs an employee with their tasks for the team view.
type EmployeeTasks struct {
	Employee models.User
	Tasks    []models.Task
}

// TeamTasks lists each of the manager's employees with their tasks.
func (s *TaskService) TeamTasks(managerID uint64) ([]EmployeeTasks, error) {
	employees, err := s.userRepo.ListEmployeesOfManager(managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	result := make([]EmployeeTasks, 0, len(employees))
	for _, emp := range employees {
		tasks, err := s.taskRepo.ListByAssignee(emp.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list tasks for employee %d: %w", emp.ID, err)
		}
		result = append(result, EmployeeTasks{Employee: emp, Tasks: tasks})
	}

	return result, nil
}

// AssignableEmployees lists the employees the manager may assign tasks to.
func (s *TaskService) AssignableEmployees(managerID uint64) ([]models.User, error) {
	employees, err := s.userRepo.ListEmployeesOfManager(managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}
