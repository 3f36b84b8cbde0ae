package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskforce/internal/authz"
	"taskforce/internal/handlers"
	"taskforce/internal/middleware"
	"taskforce/internal/services"
)

// Deps holds everything the route table needs.
type Deps struct {
	AuthService *services.AuthService
	UserService *services.UserService
	TaskService *services.TaskService
}

// New builds the gin engine with the full role-gated route surface.
func New(deps Deps) *gin.Engine {
	r := gin.Default()

	authHandler := handlers.NewAuthHandler(deps.AuthService)
	adminHandler := handlers.NewAdminHandler(deps.UserService)
	managerHandler := handlers.NewManagerHandler(deps.UserService, deps.TaskService)
	employeeHandler := handlers.NewEmployeeHandler(deps.TaskService)

	requireAuth := middleware.RequireAuth(deps.AuthService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.POST("/login", authHandler.Login)
	r.POST("/logout", requireAuth, authHandler.Logout)
	r.GET("/dashboard", requireAuth, authHandler.Dashboard)

	admin := r.Group("/admin")
	admin.Use(requireAuth)
	{
		admin.GET("/create_manager", middleware.Require(authz.ActionCreateManager), adminHandler.CreateManagerForm)
		admin.POST("/create_manager", middleware.Require(authz.ActionCreateManager), adminHandler.CreateManager)
		admin.GET("/managers", middleware.Require(authz.ActionViewManagers), adminHandler.ListManagers)
		admin.GET("/manager/:id", middleware.Require(authz.ActionViewManagers), adminHandler.GetManager)
		admin.POST("/manager/:id/remove", middleware.Require(authz.ActionRemoveManager), adminHandler.RemoveManager)
		admin.GET("/dashboard", middleware.Require(authz.ActionViewAdminStats), adminHandler.Dashboard)
	}

	manager := r.Group("/manager")
	manager.Use(requireAuth)
	{
		manager.GET("/create_employee", middleware.Require(authz.ActionCreateEmployee), managerHandler.CreateEmployeeForm)
		manager.POST("/create_employee", middleware.Require(authz.ActionCreateEmployee), managerHandler.CreateEmployee)
		manager.GET("/assign_task", middleware.Require(authz.ActionAssignTask), managerHandler.AssignTaskForm)
		manager.POST("/assign_task", middleware.Require(authz.ActionAssignTask), managerHandler.AssignTask)
		manager.GET("/reassign_task/:id", middleware.Require(authz.ActionReassignTask), managerHandler.ReassignTaskForm)
		manager.POST("/reassign_task/:id", middleware.Require(authz.ActionReassignTask), managerHandler.ReassignTask)
		manager.GET("/employees_tasks", middleware.Require(authz.ActionViewTeam), managerHandler.EmployeesTasks)
		manager.GET("/dashboard", middleware.Require(authz.ActionViewManagerStats), managerHandler.Dashboard)
	}

	employee := r.Group("/employee")
	employee.Use(requireAuth)
	{
		employee.GET("/tasks", middleware.Require(authz.ActionViewOwnTasks), employeeHandler.ListTasks)
		employee.GET("/update_task/:id", middleware.Require(authz.ActionUpdateOwnTask), employeeHandler.UpdateTaskForm)
		employee.POST("/update_task/:id", middleware.Require(authz.ActionUpdateOwnTask), employeeHandler.UpdateTask)
		employee.GET("/task_history/:id", middleware.Require(authz.ActionViewOwnTasks), employeeHandler.TaskHistory)
	}

	return r
}
