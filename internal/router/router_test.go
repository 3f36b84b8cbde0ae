package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskforce/internal/constants"
	"taskforce/internal/database"
	"taskforce/internal/models"
	"taskforce/internal/repository"
	"taskforce/internal/services"
	"taskforce/internal/token"
)

type routerTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

func setupRouterTestEnv(t *testing.T) routerTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	tokenRepo := repository.NewRevokedTokenRepository(db)
	tokens := token.NewService("test-secret")

	r := New(Deps{
		AuthService: services.NewAuthService(userRepo, tokenRepo, tokens, nil),
		UserService: services.NewUserService(userRepo, taskRepo),
		TaskService: services.NewTaskService(taskRepo, userRepo),
	})

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return routerTestEnv{db: db, router: r}
}

func (env routerTestEnv) seedUser(t *testing.T, username, password string, role models.Role, createdByID *uint64) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &models.User{
		Name:         username,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
		CreatedByID:  createdByID,
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env routerTestEnv) postForm(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env routerTestEnv) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env routerTestEnv) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()

	w := env.postForm("/login", url.Values{
		"username": {username},
		"password": {password},
	}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/dashboard", w.Header().Get("Location"))

	for _, c := range w.Result().Cookies() {
		if c.Name == constants.AccessTokenCookie {
			return c
		}
	}
	t.Fatal("expected session cookie to be set")
	return nil
}

func TestHealth(t *testing.T) {
	env := setupRouterTestEnv(t)

	w := env.get("/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestLoginSetsBearerCookie(t *testing.T) {
	env := setupRouterTestEnv(t)
	env.seedUser(t, "admin", "supersecret", models.RoleAdmin, nil)

	cookie := env.login(t, "admin", "supersecret")

	decoded, err := url.QueryUnescape(cookie.Value)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(decoded, constants.BearerPrefix))
	require.True(t, cookie.HttpOnly)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := setupRouterTestEnv(t)
	env.seedUser(t, "admin", "supersecret", models.RoleAdmin, nil)

	w := env.postForm("/login", url.Values{
		"username": {"admin"},
		"password": {"wrong-password"},
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDashboardRedirectsByRole(t *testing.T) {
	env := setupRouterTestEnv(t)
	admin := env.seedUser(t, "admin", "supersecret", models.RoleAdmin, nil)
	manager := env.seedUser(t, "m1", "supersecret", models.RoleManager, &admin.ID)
	env.seedUser(t, "e1", "supersecret", models.RoleEmployee, &manager.ID)

	cases := []struct {
		username string
		location string
	}{
		{"admin", "/admin/dashboard"},
		{"m1", "/manager/dashboard"},
		{"e1", "/employee/tasks"},
	}

	for _, tc := range cases {
		cookie := env.login(t, tc.username, "supersecret")
		w := env.get("/dashboard", cookie)
		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, tc.location, w.Header().Get("Location"))
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	env := setupRouterTestEnv(t)
	env.seedUser(t, "admin", "supersecret", models.RoleAdmin, nil)

	cookie := env.login(t, "admin", "supersecret")

	w := env.postForm("/logout", url.Values{}, cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))

	// Replaying the old, unexpired cookie must fail.
	w = env.get("/dashboard", cookie)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnauthenticatedRequests(t *testing.T) {
	env := setupRouterTestEnv(t)

	w := env.get("/dashboard", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.get("/employee/tasks", &http.Cookie{
		Name:  constants.AccessTokenCookie,
		Value: "garbage",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleGuards(t *testing.T) {
	env := setupRouterTestEnv(t)
	admin := env.seedUser(t, "admin", "supersecret", models.RoleAdmin, nil)
	manager := env.seedUser(t, "m1", "supersecret", models.RoleManager, &admin.ID)
	env.seedUser(t, "e1", "supersecret", models.RoleEmployee, &manager.ID)

	employeeCookie := env.login(t, "e1", "supersecret")
	managerCookie := env.login(t, "m1", "supersecret")
	adminCookie := env.login(t, "admin", "supersecret")

	w := env.get("/admin/dashboard", employeeCookie)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.get("/admin/managers", managerCookie)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.get("/manager/dashboard", adminCookie)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.get("/employee/tasks", managerCookie)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminCreatesManager(t *testing.T) {
	env := setupRouterTestEnv(t)
	env.seedUser(t, "admin", "supersecret", models.RoleAdmin, nil)
	cookie := env.login(t, "admin", "supersecret")

	form := url.Values{
		"name":     {"Manager One"},
		"username": {"m1"},
		"email":    {"m1@example.com"},
		"password": {"supersecret"},
	}
	w := env.postForm("/admin/create_manager", form, cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/admin/dashboard", w.Header().Get("Location"))

	var manager models.User
	require.NoError(t, env.db.Where("username = ?", "m1").First(&manager).Error)
	require.Equal(t, models.RoleManager, manager.Role)

	// Duplicate username is a conflict and writes nothing.
	form.Set("email", "other@example.com")
	w = env.postForm("/admin/create_manager", form, cookie)
	require.Equal(t, http.StatusConflict, w.Code)

	var count int64
	env.db.Model(&models.User{}).Where("role = ?", models.RoleManager).Count(&count)
	require.Equal(t, int64(1), count)
}

func TestManagerDetailAndRemove(t *testing.T) {
	env := setupRouterTestEnv(t)
	admin := env.seedUser(t, "admin", "supersecret", models.RoleAdmin, nil)
	manager := env.seedUser(t, "m1", "supersecret", models.RoleManager, &admin.ID)
	env.seedUser(t, "e1", "supersecret", models.RoleEmployee, &manager.ID)
	cookie := env.login(t, "admin", "supersecret")

	w := env.get("/admin/manager/"+strconv.FormatUint(manager.ID, 10), cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var detail struct {
		Manager struct {
			Username string `json:"username"`
		} `json:"manager"`
		Employees []struct {
			Username string `json:"username"`
		} `json:"employees"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	require.Equal(t, "m1", detail.Manager.Username)
	require.Len(t, detail.Employees, 1)

	w = env.get("/admin/manager/9999", cookie)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = env.postForm("/admin/manager/"+strconv.FormatUint(manager.ID, 10)+"/remove", url.Values{}, cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/admin/managers", w.Header().Get("Location"))

	var userCount int64
	env.db.Model(&models.User{}).Count(&userCount)
	require.Equal(t, int64(1), userCount) // only the admin survives
}

func TestTaskFlowOverHTTP(t *testing.T) {
	env := setupRouterTestEnv(t)
	env.seedUser(t, "admin", "supersecret", models.RoleAdmin, nil)
	adminCookie := env.login(t, "admin", "supersecret")

	// Admin creates manager m1.
	w := env.postForm("/admin/create_manager", url.Values{
		"name":     {"Manager One"},
		"username": {"m1"},
		"email":    {"m1@example.com"},
		"password": {"supersecret"},
	}, adminCookie)
	require.Equal(t, http.StatusSeeOther, w.Code)

	managerCookie := env.login(t, "m1", "supersecret")

	// Manager creates employees e1 and e2.
	for _, name := range []string{"e1", "e2"} {
		w = env.postForm("/manager/create_employee", url.Values{
			"name":     {name},
			"username": {name},
			"email":    {name + "@example.com"},
			"password": {"supersecret"},
		}, managerCookie)
		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, "/manager/dashboard", w.Header().Get("Location"))
	}

	var e1, e2 models.User
	require.NoError(t, env.db.Where("username = ?", "e1").First(&e1).Error)
	require.NoError(t, env.db.Where("username = ?", "e2").First(&e2).Error)

	// Manager assigns a task to e1.
	w = env.postForm("/manager/assign_task", url.Values{
		"title":          {"Write report"},
		"description":    {"Quarterly numbers"},
		"assigned_to_id": {strconv.FormatUint(e1.ID, 10)},
	}, managerCookie)
	require.Equal(t, http.StatusSeeOther, w.Code)

	var task models.Task
	require.NoError(t, env.db.Where("title = ?", "Write report").First(&task).Error)
	require.Equal(t, models.TaskStatusPending, task.Status)
	require.Equal(t, 0, task.HoursSpent)

	taskID := strconv.FormatUint(task.ID, 10)
	employeeCookie := env.login(t, "e1", "supersecret")

	// e1 sees the task.
	w = env.get("/employee/tasks", employeeCookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Write report")

	// Two progress updates.
	w = env.postForm("/employee/update_task/"+taskID, url.Values{
		"status":      {"in_progress"},
		"hours_spent": {"2"},
	}, employeeCookie)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/employee/tasks", w.Header().Get("Location"))

	w = env.postForm("/employee/update_task/"+taskID, url.Values{
		"status":      {"completed"},
		"hours_spent": {"5"},
	}, employeeCookie)
	require.Equal(t, http.StatusSeeOther, w.Code)

	// The ledger holds both transitions in order.
	w = env.get("/employee/task_history/"+taskID, employeeCookie)
	require.Equal(t, http.StatusOK, w.Code)

	var historyResp struct {
		Task struct {
			Status     models.TaskStatus `json:"status"`
			HoursSpent int               `json:"hours_spent"`
		} `json:"task"`
		History []struct {
			StatusBefore models.TaskStatus `json:"status_before"`
			StatusAfter  models.TaskStatus `json:"status_after"`
			HoursSpent   int               `json:"hours_spent"`
		} `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &historyResp))
	require.Equal(t, models.TaskStatusCompleted, historyResp.Task.Status)
	require.Equal(t, 5, historyResp.Task.HoursSpent)
	require.Len(t, historyResp.History, 2)
	require.Equal(t, models.TaskStatusPending, historyResp.History[0].StatusBefore)
	require.Equal(t, models.TaskStatusInProgress, historyResp.History[0].StatusAfter)
	require.Equal(t, models.TaskStatusInProgress, historyResp.History[1].StatusBefore)
	require.Equal(t, models.TaskStatusCompleted, historyResp.History[1].StatusAfter)

	// Manager reassigns the finished task to e2; status carries over and no
	// history row is written.
	w = env.postForm("/manager/reassign_task/"+taskID, url.Values{
		"new_employee_id": {strconv.FormatUint(e2.ID, 10)},
	}, managerCookie)
	require.Equal(t, http.StatusSeeOther, w.Code)

	require.NoError(t, env.db.First(&task, task.ID).Error)
	require.Equal(t, e2.ID, task.AssignedToID)
	require.Equal(t, models.TaskStatusCompleted, task.Status)

	var historyCount int64
	env.db.Model(&models.TaskHistory{}).Where("task_id = ?", task.ID).Count(&historyCount)
	require.Equal(t, int64(2), historyCount)
}

func TestOwnershipViolationsAnswerNotFound(t *testing.T) {
	env := setupRouterTestEnv(t)
	admin := env.seedUser(t, "admin", "supersecret", models.RoleAdmin, nil)
	manager := env.seedUser(t, "m1", "supersecret", models.RoleManager, &admin.ID)
	otherManager := env.seedUser(t, "m2", "supersecret", models.RoleManager, &admin.ID)
	employee := env.seedUser(t, "e1", "supersecret", models.RoleEmployee, &manager.ID)
	foreignEmployee := env.seedUser(t, "e2", "supersecret", models.RoleEmployee, &otherManager.ID)

	task := &models.Task{
		Title:        "Write report",
		AssignedToID: employee.ID,
		AssignedByID: manager.ID,
		Status:       models.TaskStatusPending,
	}
	require.NoError(t, env.db.Create(task).Error)
	taskID := strconv.FormatUint(task.ID, 10)

	// Another employee cannot see or update the task.
	foreignCookie := env.login(t, "e2", "supersecret")
	w := env.postForm("/employee/update_task/"+taskID, url.Values{
		"status":      {"completed"},
		"hours_spent": {"1"},
	}, foreignCookie)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = env.get("/employee/task_history/"+taskID, foreignCookie)
	require.Equal(t, http.StatusNotFound, w.Code)

	// Another manager cannot reassign the task.
	otherManagerCookie := env.login(t, "m2", "supersecret")
	w = env.postForm("/manager/reassign_task/"+taskID, url.Values{
		"new_employee_id": {strconv.FormatUint(foreignEmployee.ID, 10)},
	}, otherManagerCookie)
	require.Equal(t, http.StatusNotFound, w.Code)

	// The owning manager cannot assign to an employee it did not create.
	managerCookie := env.login(t, "m1", "supersecret")
	w = env.postForm("/manager/assign_task", url.Values{
		"title":          {"Stolen employee"},
		"assigned_to_id": {strconv.FormatUint(foreignEmployee.ID, 10)},
	}, managerCookie)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestManagerViews(t *testing.T) {
	env := setupRouterTestEnv(t)
	admin := env.seedUser(t, "admin", "supersecret", models.RoleAdmin, nil)
	manager := env.seedUser(t, "m1", "supersecret", models.RoleManager, &admin.ID)
	employee := env.seedUser(t, "e1", "supersecret", models.RoleEmployee, &manager.ID)

	task := &models.Task{
		Title:        "Write report",
		AssignedToID: employee.ID,
		AssignedByID: manager.ID,
		Status:       models.TaskStatusInProgress,
	}
	require.NoError(t, env.db.Create(task).Error)

	cookie := env.login(t, "m1", "supersecret")

	w := env.get("/manager/employees_tasks", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Write report")
	require.Contains(t, w.Body.String(), "e1")

	w = env.get("/manager/assign_task", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "e1")

	w = env.get("/manager/dashboard", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		EmployeesCount int64   `json:"employees_count"`
		AssignedTasks  int64   `json:"assigned_tasks"`
		AwaitingReview int64   `json:"awaiting_review"`
		ChartValues    []int64 `json:"chart_values"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	require.Equal(t, int64(1), stats.EmployeesCount)
	require.Equal(t, int64(1), stats.AssignedTasks)
	require.Equal(t, int64(1), stats.AwaitingReview)
	require.Len(t, stats.ChartValues, 7)
}
