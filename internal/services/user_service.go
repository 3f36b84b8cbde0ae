package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskforce/internal/constants"
	"taskforce/internal/models"
	"taskforce/internal/repository"
	"taskforce/internal/utils"
)

var (
	ErrUserConflict         = errors.New("username or email already exists")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrNameRequired         = errors.New("name is required")
	ErrManagerNotFound      = errors.New("manager not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// UserService handles the account hierarchy: admins create managers,
// managers create employees.
type UserService struct {
	userRepo repository.UserRepository
	taskRepo repository.TaskRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, taskRepo repository.TaskRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		taskRepo: taskRepo,
	}
}

// CreateUserInput represents the fields for a new account.
type CreateUserInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

// CreateManager creates a manager account owned by the acting admin.
func (s *UserService) CreateManager(actor *models.User, input CreateUserInput) (*models.User, error) {
	return s.createUser(actor, input, models.RoleManager)
}

// CreateEmployee creates an employee account owned by the acting manager.
func (s *UserService) CreateEmployee(actor *models.User, input CreateUserInput) (*models.User, error) {
	return s.createUser(actor, input, models.RoleEmployee)
}

func (s *UserService) createUser(actor *models.User, input CreateUserInput, role models.Role) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByUsernameOrEmail(input.Username, input.Email); err == nil {
		return nil, ErrUserConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check uniqueness: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	creatorID := actor.ID
	user := &models.User{
		Name:         name,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		CreatedByID:  &creatorID,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// ListManagers lists manager accounts, newest first.
func (s *UserService) ListManagers(params utils.PaginationParams) ([]models.User, int64, error) {
	managers, total, err := s.userRepo.ListByRole(models.RoleManager, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list managers: %w", err)
	}
	return managers, total, nil
}

// GetManager returns a manager together with the employees it created.
func (s *UserService) GetManager(managerID uint64) (*models.User, []models.User, error) {
	manager, err := s.userRepo.FindManagerByID(managerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrManagerNotFound
		}
		return nil, nil, fmt.Errorf("failed to find manager: %w", err)
	}

	employees, err := s.userRepo.ListEmployeesOfManager(managerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return manager, employees, nil
}

// RemoveManager deletes a manager and, transitively, its employees and their
// tasks and history.
func (s *UserService) RemoveManager(managerID uint64) error {
	if _, err := s.userRepo.FindManagerByID(managerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrManagerNotFound
		}
		return fmt.Errorf("failed to find manager: %w", err)
	}

	if err := s.userRepo.DeleteManagerCascade(managerID); err != nil {
		return fmt.Errorf("failed to remove manager: %w", err)
	}

	return nil
}

// ManagerSummary is a manager row on the admin dashboard.
type ManagerSummary struct {
	Manager        models.User
	EmployeesCount int64
}

// AdminDashboard aggregates the admin landing page numbers.
type AdminDashboard struct {
	TotalManagers  int64
	TotalEmployees int64
	ActiveTasks    int64
	CompletedTasks int64
	RecentManagers []ManagerSummary
}

// GetAdminDashboard computes the admin dashboard aggregates.
func (s *UserService) GetAdminDashboard() (*AdminDashboard, error) {
	totalManagers, err := s.userRepo.CountByRole(models.RoleManager)
	if err != nil {
		return nil, fmt.Errorf("failed to count managers: %w", err)
	}
	totalEmployees, err := s.userRepo.CountByRole(models.RoleEmployee)
	if err != nil {
		return nil, fmt.Errorf("failed to count employees: %w", err)
	}
	activeTasks, err := s.taskRepo.CountActive()
	if err != nil {
		return nil, fmt.Errorf("failed to count active tasks: %w", err)
	}
	completedTasks, err := s.taskRepo.CountByStatus(models.TaskStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed tasks: %w", err)
	}

	recent, err := s.userRepo.ListRecentByRole(models.RoleManager, constants.RecentListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent managers: %w", err)
	}

	summaries := make([]ManagerSummary, 0, len(recent))
	for _, m := range recent {
		count, err := s.userRepo.CountEmployeesOfManager(m.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count employees of manager %d: %w", m.ID, err)
		}
		summaries = append(summaries, ManagerSummary{Manager: m, EmployeesCount: count})
	}

	return &AdminDashboard{
		TotalManagers:  totalManagers,
		TotalEmployees: totalEmployees,
		ActiveTasks:    activeTasks,
		CompletedTasks: completedTasks,
		RecentManagers: summaries,
	}, nil
}

// ManagerDashboard aggregates the manager landing page numbers.
type ManagerDashboard struct {
	EmployeesCount int64
	AssignedTasks  int64
	AwaitingReview int64
	Completed      int64
	RecentTasks    []models.Task
	// ChartValues holds per-day created-task counts, today first.
	ChartValues []int64
}

// GetManagerDashboard computes the manager dashboard aggregates.
func (s *UserService) GetManagerDashboard(managerID uint64) (*ManagerDashboard, error) {
	employeesCount, err := s.userRepo.CountEmployeesOfManager(managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count employees: %w", err)
	}
	assigned, err := s.taskRepo.CountByManager(managerID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count assigned tasks: %w", err)
	}
	inProgress := models.TaskStatusInProgress
	awaitingReview, err := s.taskRepo.CountByManager(managerID, &inProgress)
	if err != nil {
		return nil, fmt.Errorf("failed to count in-progress tasks: %w", err)
	}
	completed := models.TaskStatusCompleted
	completedCount, err := s.taskRepo.CountByManager(managerID, &completed)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed tasks: %w", err)
	}

	recentTasks, err := s.taskRepo.ListRecentByManager(managerID, constants.RecentListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent tasks: %w", err)
	}

	now := time.Now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	chart := make([]int64, 0, constants.ChartDays)
	for i := 0; i < constants.ChartDays; i++ {
		dayStart := startOfToday.AddDate(0, 0, -i)
		count, err := s.taskRepo.CountCreatedByManagerBetween(managerID, dayStart, dayStart.AddDate(0, 0, 1))
		if err != nil {
			return nil, fmt.Errorf("failed to count tasks for chart: %w", err)
		}
		chart = append(chart, count)
	}

	return &ManagerDashboard{
		EmployeesCount: employeesCount,
		AssignedTasks:  assigned,
		AwaitingReview: awaitingReview,
		Completed:      completedCount,
		RecentTasks:    recentTasks,
		ChartValues:    chart,
	}, nil
}
