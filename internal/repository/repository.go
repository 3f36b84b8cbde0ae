package repository

import (
	"time"

	"taskforce/internal/models"
	"taskforce/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByUsernameOrEmail finds a user matching either unique field
	FindByUsernameOrEmail(username, email string) (*models.User, error)

	// FindManagerByID finds a user that has the manager role
	FindManagerByID(id uint64) (*models.User, error)

	// FindEmployeeOfManager finds an employee created by the given manager
	FindEmployeeOfManager(employeeID, managerID uint64) (*models.User, error)

	// ListByRole lists users of a role with pagination, newest first
	ListByRole(role models.Role, params utils.PaginationParams) ([]models.User, int64, error)

	// ListRecentByRole lists the most recently created users of a role
	ListRecentByRole(role models.Role, limit int) ([]models.User, error)

	// ListEmployeesOfManager lists all employees created by the manager
	ListEmployeesOfManager(managerID uint64) ([]models.User, error)

	// CountByRole counts users of a role
	CountByRole(role models.Role) (int64, error)

	// CountEmployeesOfManager counts employees created by the manager
	CountEmployeesOfManager(managerID uint64) (int64, error)

	// DeleteManagerCascade removes a manager together with its employees,
	// their tasks and the task history, in one transaction
	DeleteManagerCascade(managerID uint64) error
}

// TaskRepository defines the interface for task and history data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByIDForManager finds a task assigned by the given manager. A task
	// that exists but belongs to another manager is a record-not-found.
	FindByIDForManager(taskID, managerID uint64) (*models.Task, error)

	// FindByIDForEmployee finds a task assigned to the given employee. A task
	// that exists but is assigned elsewhere is a record-not-found.
	FindByIDForEmployee(taskID, employeeID uint64) (*models.Task, error)

	// ListByAssignee lists tasks assigned to an employee
	ListByAssignee(employeeID uint64) ([]models.Task, error)

	// ListRecentByManager lists the manager's most recently created tasks
	ListRecentByManager(managerID uint64, limit int) ([]models.Task, error)

	// CountByManager counts tasks assigned by the manager, optionally
	// filtered by status
	CountByManager(managerID uint64, status *models.TaskStatus) (int64, error)

	// CountByStatus counts all tasks with the given status
	CountByStatus(status models.TaskStatus) (int64, error)

	// CountActive counts all tasks not yet completed
	CountActive() (int64, error)

	// CountCreatedByManagerBetween counts tasks the manager created in
	// [from, to)
	CountCreatedByManagerBetween(managerID uint64, from, to time.Time) (int64, error)

	// UpdateStatusWithHistory appends a history row capturing the transition
	// and mutates the task, atomically: both writes commit or neither does.
	UpdateStatusWithHistory(task *models.Task, newStatus models.TaskStatus, hoursSpent int, actorID uint64) error

	// Reassign changes the task's assignee. No history row is written;
	// status and hours carry over to the new assignee.
	Reassign(task *models.Task, newAssigneeID uint64) error

	// ListHistory lists a task's history rows in chronological order
	ListHistory(taskID uint64) ([]models.TaskHistory, error)
}

// RevokedTokenRepository defines the interface for the token revocation set
type RevokedTokenRepository interface {
	// Revoke inserts a token into the revocation set
	Revoke(tokenString string, expiresAt time.Time) error

	// IsRevoked reports whether a token is in the revocation set
	IsRevoked(tokenString string) (bool, error)

	// DeleteExpired prunes revocation rows whose token has expired anyway
	DeleteExpired(now time.Time) (int64, error)
}
