package authz

import "taskforce/internal/models"

// Action is something an authenticated user may try to do. Route guards
// declare the action they protect; the matrix below is the single source of
// truth for which role may perform it. Ownership (which manager, which
// employee, which task) is always re-derived from the store by the service
// layer, never decided here.
type Action string

const (
	ActionCreateManager  Action = "create_manager"
	ActionViewManagers   Action = "view_managers"
	ActionRemoveManager  Action = "remove_manager"
	ActionViewAdminStats Action = "view_admin_stats"

	ActionCreateEmployee   Action = "create_employee"
	ActionAssignTask       Action = "assign_task"
	ActionReassignTask     Action = "reassign_task"
	ActionViewTeam         Action = "view_team"
	ActionViewManagerStats Action = "view_manager_stats"

	ActionViewOwnTasks  Action = "view_own_tasks"
	ActionUpdateOwnTask Action = "update_own_task"
)

var matrix = map[models.Role]map[Action]bool{
	models.RoleAdmin: {
		ActionCreateManager:  true,
		ActionViewManagers:   true,
		ActionRemoveManager:  true,
		ActionViewAdminStats: true,
	},
	models.RoleManager: {
		ActionCreateEmployee:   true,
		ActionAssignTask:       true,
		ActionReassignTask:     true,
		ActionViewTeam:         true,
		ActionViewManagerStats: true,
	},
	models.RoleEmployee: {
		ActionViewOwnTasks:  true,
		ActionUpdateOwnTask: true,
	},
}

// Can reports whether role is allowed to perform action.
func Can(role models.Role, action Action) bool {
	return matrix[role][action]
}
