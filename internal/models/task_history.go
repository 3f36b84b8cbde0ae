package models

import "time"

// TaskHistory is an append-only ledger row. Rows are only ever inserted;
// nothing in the codebase updates or deletes them outside of a manager
// removal cascade.
type TaskHistory struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	TaskID       uint64     `gorm:"not null;index" json:"task_id"`
	UpdatedByID  uint64     `gorm:"not null" json:"updated_by_id"`
	StatusBefore TaskStatus `gorm:"type:varchar(20);not null" json:"status_before"`
	StatusAfter  TaskStatus `gorm:"type:varchar(20);not null" json:"status_after"`
	HoursSpent   int        `gorm:"not null" json:"hours_spent"`
	CreatedAt    time.Time  `json:"created_at"`

	// Relations
	Task      Task `gorm:"foreignKey:TaskID" json:"-"`
	UpdatedBy User `gorm:"foreignKey:UpdatedByID" json:"updated_by,omitempty"`
}
