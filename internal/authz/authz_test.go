package authz

import (
	"testing"

	"github.com/stretchr/testify/require"

	"taskforce/internal/models"
)

func TestPermissionMatrix(t *testing.T) {
	cases := []struct {
		name    string
		role    models.Role
		action  Action
		allowed bool
	}{
		{"admin creates managers", models.RoleAdmin, ActionCreateManager, true},
		{"admin removes managers", models.RoleAdmin, ActionRemoveManager, true},
		{"admin views managers", models.RoleAdmin, ActionViewManagers, true},
		{"admin cannot assign tasks", models.RoleAdmin, ActionAssignTask, false},
		{"admin cannot create employees", models.RoleAdmin, ActionCreateEmployee, false},

		{"manager creates employees", models.RoleManager, ActionCreateEmployee, true},
		{"manager assigns tasks", models.RoleManager, ActionAssignTask, true},
		{"manager reassigns tasks", models.RoleManager, ActionReassignTask, true},
		{"manager views team", models.RoleManager, ActionViewTeam, true},
		{"manager cannot create managers", models.RoleManager, ActionCreateManager, false},
		{"manager cannot update employee tasks", models.RoleManager, ActionUpdateOwnTask, false},

		{"employee views own tasks", models.RoleEmployee, ActionViewOwnTasks, true},
		{"employee updates own tasks", models.RoleEmployee, ActionUpdateOwnTask, true},
		{"employee cannot assign tasks", models.RoleEmployee, ActionAssignTask, false},
		{"employee cannot view managers", models.RoleEmployee, ActionViewManagers, false},

		{"unknown role denied", models.Role("intern"), ActionViewOwnTasks, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.allowed, Can(tc.role, tc.action))
		})
	}
}
