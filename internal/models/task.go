package models

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// ValidTaskStatus reports whether s is one of the known statuses.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	Title        string     `gorm:"not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	AssignedToID uint64     `gorm:"not null;index" json:"assigned_to_id"`
	AssignedByID uint64     `gorm:"not null;index" json:"assigned_by_id"`
	Status       TaskStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	HoursSpent   int        `gorm:"not null;default:0" json:"hours_spent"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	AssignedTo User          `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
	AssignedBy User          `gorm:"foreignKey:AssignedByID" json:"assigned_by,omitempty"`
	History    []TaskHistory `gorm:"foreignKey:TaskID" json:"history,omitempty"`
}
