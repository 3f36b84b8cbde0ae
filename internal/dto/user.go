package dto

import (
	"time"

	"taskforce/internal/models"
	"taskforce/internal/services"
	"taskforce/internal/utils"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          uint64      `json:"id"`
	Name        string      `json:"name"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	Role        models.Role `json:"role"`
	CreatedByID *uint64     `json:"created_by_id,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// ManagerListResponse represents a paginated list of managers
type ManagerListResponse struct {
	Managers   []UserDTO                `json:"managers"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ManagerDetailResponse represents a manager with its employees
type ManagerDetailResponse struct {
	Manager   UserDTO   `json:"manager"`
	Employees []UserDTO `json:"employees"`
}

// ManagerSummaryDTO is a manager row on the admin dashboard
type ManagerSummaryDTO struct {
	Manager        UserDTO `json:"manager"`
	EmployeesCount int64   `json:"employees_count"`
}

// AdminDashboardDTO represents the admin dashboard payload
type AdminDashboardDTO struct {
	TotalManagers  int64               `json:"total_managers"`
	TotalEmployees int64               `json:"total_employees"`
	ActiveTasks    int64               `json:"active_tasks"`
	CompletedTasks int64               `json:"completed_tasks"`
	RecentManagers []ManagerSummaryDTO `json:"recent_managers"`
}

// ManagerDashboardDTO represents the manager dashboard payload
type ManagerDashboardDTO struct {
	EmployeesCount int64     `json:"employees_count"`
	AssignedTasks  int64     `json:"assigned_tasks"`
	AwaitingReview int64     `json:"awaiting_review"`
	Completed      int64     `json:"completed"`
	RecentTasks    []TaskDTO `json:"recent_tasks"`
	ChartValues    []int64   `json:"chart_values"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Name:        user.Name,
		Username:    user.Username,
		Email:       user.Email,
		Role:        user.Role,
		CreatedByID: user.CreatedByID,
		CreatedAt:   user.CreatedAt,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = ToUserDTO(u)
	}
	return dtos
}

// ToAdminDashboardDTO converts the admin dashboard aggregate
func ToAdminDashboardDTO(d services.AdminDashboard) AdminDashboardDTO {
	recent := make([]ManagerSummaryDTO, len(d.RecentManagers))
	for i, s := range d.RecentManagers {
		recent[i] = ManagerSummaryDTO{
			Manager:        ToUserDTO(s.Manager),
			EmployeesCount: s.EmployeesCount,
		}
	}

	return AdminDashboardDTO{
		TotalManagers:  d.TotalManagers,
		TotalEmployees: d.TotalEmployees,
		ActiveTasks:    d.ActiveTasks,
		CompletedTasks: d.CompletedTasks,
		RecentManagers: recent,
	}
}

// ToManagerDashboardDTO converts the manager dashboard aggregate
func ToManagerDashboardDTO(d services.ManagerDashboard) ManagerDashboardDTO {
	return ManagerDashboardDTO{
		EmployeesCount: d.EmployeesCount,
		AssignedTasks:  d.AssignedTasks,
		AwaitingReview: d.AwaitingReview,
		Completed:      d.Completed,
		RecentTasks:    ToTaskDTOs(d.RecentTasks),
		ChartValues:    d.ChartValues,
	}
}
