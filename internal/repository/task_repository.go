package repository

import (
	"time"

	"gorm.io/gorm"

	"taskforce/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByIDForManager finds a task assigned by the given manager
func (r *GormTaskRepository) FindByIDForManager(taskID, managerID uint64) (*models.Task, error) {
	var task models.Task
	err := r.db.
		Preload("AssignedTo").
		Where("id = ? AND assigned_by_id = ?", taskID, managerID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByIDForEmployee finds a task assigned to the given employee
func (r *GormTaskRepository) FindByIDForEmployee(taskID, employeeID uint64) (*models.Task, error) {
	var task models.Task
	err := r.db.
		Where("id = ? AND assigned_to_id = ?", taskID, employeeID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByAssignee lists tasks assigned to an employee
func (r *GormTaskRepository) ListByAssignee(employeeID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("assigned_to_id = ?", employeeID).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListRecentByManager lists the manager's most recently created tasks
func (r *GormTaskRepository) ListRecentByManager(managerID uint64, limit int) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Preload("AssignedTo").
		Where("assigned_by_id = ?", managerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// CountByManager counts tasks assigned by the manager, optionally filtered by status
func (r *GormTaskRepository) CountByManager(managerID uint64, status *models.TaskStatus) (int64, error) {
	query := r.db.Model(&models.Task{}).Where("assigned_by_id = ?", managerID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

// CountByStatus counts all tasks with the given status
func (r *GormTaskRepository) CountByStatus(status models.TaskStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// CountActive counts all tasks not yet completed
func (r *GormTaskRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("status <> ?", models.TaskStatusCompleted).
		Count(&count).Error
	return count, err
}

// CountCreatedByManagerBetween counts tasks the manager created in [from, to)
func (r *GormTaskRepository) CountCreatedByManagerBetween(managerID uint64, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("assigned_by_id = ? AND created_at >= ? AND created_at < ?", managerID, from, to).
		Count(&count).Error
	return count, err
}

// UpdateStatusWithHistory appends a history row and mutates the task in one
// transaction. status_before is read from the task row as loaded, which the
// service layer fetched inside the same request.
func (r *GormTaskRepository) UpdateStatusWithHistory(task *models.Task, newStatus models.TaskStatus, hoursSpent int, actorID uint64) error {
	statusBefore := task.Status

	err := r.db.Transaction(func(tx *gorm.DB) error {
		history := models.TaskHistory{
			TaskID:       task.ID,
			UpdatedByID:  actorID,
			StatusBefore: statusBefore,
			StatusAfter:  newStatus,
			HoursSpent:   hoursSpent,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		return tx.Model(&models.Task{}).
			Where("id = ?", task.ID).
			Updates(map[string]interface{}{
				"status":      newStatus,
				"hours_spent": hoursSpent,
			}).Error
	})
	if err != nil {
		return err
	}

	task.Status = newStatus
	task.HoursSpent = hoursSpent
	return nil
}

// Reassign changes the task's assignee only. Status and hours carry over and
// no history row is written.
func (r *GormTaskRepository) Reassign(task *models.Task, newAssigneeID uint64) error {
	err := r.db.Model(&models.Task{}).
		Where("id = ?", task.ID).
		Update("assigned_to_id", newAssigneeID).Error
	if err != nil {
		return err
	}

	task.AssignedToID = newAssigneeID
	return nil
}

// ListHistory lists a task's history rows in chronological order
func (r *GormTaskRepository) ListHistory(taskID uint64) ([]models.TaskHistory, error) {
	var history []models.TaskHistory
	err := r.db.
		Preload("UpdatedBy").
		Where("task_id = ?", taskID).
		Order("id ASC").
		Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}
