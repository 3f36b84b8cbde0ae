package repository

import (
	"fmt"

	"gorm.io/gorm"

	"taskforce/internal/database"
	"taskforce/internal/models"
	"taskforce/internal/utils"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsernameOrEmail finds a user matching either unique field
func (r *GormUserRepository) FindByUsernameOrEmail(username, email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ? OR email = ?", username, email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindManagerByID finds a user that has the manager role
func (r *GormUserRepository) FindManagerByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ? AND role = ?", id, models.RoleManager).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindEmployeeOfManager finds an employee created by the given manager.
// Scoping the query by created_by_id makes an out-of-scope employee
// indistinguishable from a missing one.
func (r *GormUserRepository) FindEmployeeOfManager(employeeID, managerID uint64) (*models.User, error) {
	var user models.User
	err := r.db.
		Where("id = ? AND created_by_id = ? AND role = ?", employeeID, managerID, models.RoleEmployee).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListByRole lists users of a role with pagination, newest first
func (r *GormUserRepository) ListByRole(role models.Role, params utils.PaginationParams) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{}).Where("role = ?", role)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := query.
		Order("created_at DESC").
		Scopes(database.Paginate(params)).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// ListRecentByRole lists the most recently created users of a role
func (r *GormUserRepository) ListRecentByRole(role models.Role, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Where("role = ?", role).
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ListEmployeesOfManager lists all employees created by the manager
func (r *GormUserRepository) ListEmployeesOfManager(managerID uint64) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Where("created_by_id = ? AND role = ?", managerID, models.RoleEmployee).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// CountByRole counts users of a role
func (r *GormUserRepository) CountByRole(role models.Role) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

// CountEmployeesOfManager counts employees created by the manager
func (r *GormUserRepository) CountEmployeesOfManager(managerID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("created_by_id = ? AND role = ?", managerID, models.RoleEmployee).
		Count(&count).Error
	return count, err
}

// DeleteManagerCascade removes a manager together with its employees, their
// tasks and the task history, atomically.
func (r *GormUserRepository) DeleteManagerCascade(managerID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var employeeIDs []uint64
		err := tx.Model(&models.User{}).
			Where("created_by_id = ? AND role = ?", managerID, models.RoleEmployee).
			Pluck("id", &employeeIDs).Error
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}

		taskScope := tx.Model(&models.Task{}).
			Where("assigned_by_id = ?", managerID).
			Select("id")
		if err := tx.Where("task_id IN (?)", taskScope).Delete(&models.TaskHistory{}).Error; err != nil {
			return fmt.Errorf("failed to delete task history: %w", err)
		}

		if err := tx.Where("assigned_by_id = ?", managerID).Delete(&models.Task{}).Error; err != nil {
			return fmt.Errorf("failed to delete tasks: %w", err)
		}

		if len(employeeIDs) > 0 {
			if err := tx.Where("id IN ?", employeeIDs).Delete(&models.User{}).Error; err != nil {
				return fmt.Errorf("failed to delete employees: %w", err)
			}
		}

		if err := tx.Delete(&models.User{}, managerID).Error; err != nil {
			return fmt.Errorf("failed to delete manager: %w", err)
		}

		return nil
	})
}
