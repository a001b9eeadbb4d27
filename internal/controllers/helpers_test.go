package controllers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"taskly-be/internal/entities"
	"taskly-be/internal/middleware"
	"taskly-be/internal/service"
	"taskly-be/internal/session"
)

type mockUserRepo struct {
	nextID int64
	users  map[int64]*entities.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*entities.User)}
}

func (m *mockUserRepo) Create(email, passwordHash string) (*entities.User, error) {
	m.nextID++
	user := &entities.User{
		ID:           m.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *mockUserRepo) FindByEmail(email string) (*entities.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) FindByResetToken(token string) (*entities.User, error) {
	for _, u := range m.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) SetResetToken(id int64, token string, expiresAt time.Time) error {
	u, ok := m.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.ResetToken = &token
	u.ResetTokenExpiresAt = &expiresAt
	return nil
}

func (m *mockUserRepo) UpdatePassword(id int64, passwordHash string) error {
	u, ok := m.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.PasswordHash = passwordHash
	u.ResetToken = nil
	u.ResetTokenExpiresAt = nil
	return nil
}

type mockTaskRepo struct {
	nextID int64
	tasks  map[int64]*entities.Task
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[int64]*entities.Task)}
}

func (m *mockTaskRepo) Create(userID int64, title, status string, dueDate *time.Time) (*entities.Task, error) {
	m.nextID++
	task := &entities.Task{
		ID:        m.nextID,
		Title:     title,
		Status:    status,
		DueDate:   dueDate,
		UserID:    userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.tasks[task.ID] = task
	return task, nil
}

func (m *mockTaskRepo) FindByUser(userID int64) ([]*entities.Task, error) {
	out := []*entities.Task{}
	for _, task := range m.tasks {
		if task.UserID == userID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (m *mockTaskRepo) FindByID(userID, taskID int64) (*entities.Task, error) {
	task, ok := m.tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, sql.ErrNoRows
	}
	copied := *task
	return &copied, nil
}

func (m *mockTaskRepo) Update(task *entities.Task) (*entities.Task, error) {
	stored, ok := m.tasks[task.ID]
	if !ok || stored.UserID != task.UserID {
		return nil, sql.ErrNoRows
	}
	stored.Title = task.Title
	stored.Status = task.Status
	stored.DueDate = task.DueDate
	stored.UpdatedAt = time.Now()
	copied := *stored
	return &copied, nil
}

func (m *mockTaskRepo) Delete(userID, taskID int64) error {
	task, ok := m.tasks[taskID]
	if !ok || task.UserID != userID {
		return sql.ErrNoRows
	}
	delete(m.tasks, taskID)
	return nil
}

func (m *mockTaskRepo) FindDueOnByUser(userID int64, day time.Time) ([]*entities.Task, error) {
	out := []*entities.Task{}
	for _, task := range m.tasks {
		if task.UserID == userID && task.DueDate != nil && task.DueDate.Format("2006-01-02") == day.Format("2006-01-02") {
			out = append(out, task)
		}
	}
	return out, nil
}

func (m *mockTaskRepo) FindDueOn(day time.Time) ([]*entities.Task, error) {
	out := []*entities.Task{}
	for _, task := range m.tasks {
		if task.Status != entities.StatusDone && task.DueDate != nil && task.DueDate.Format("2006-01-02") == day.Format("2006-01-02") {
			out = append(out, task)
		}
	}
	return out, nil
}

type mockMailer struct {
	lastTo       string
	lastResetURL string
}

func (m *mockMailer) SendPasswordReset(to, resetURL string, _ time.Time) error {
	m.lastTo = to
	m.lastResetURL = resetURL
	return nil
}

type testEnv struct {
	router   *gin.Engine
	userRepo *mockUserRepo
	taskRepo *mockTaskRepo
	mailer   *mockMailer
}

// newTestEnv wires the controllers the way main does, with in-memory
// stores behind them.
func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	userRepo := newMockUserRepo()
	taskRepo := newMockTaskRepo()
	mail := &mockMailer{}
	sessions := session.NewMemoryStore(time.Hour)

	authService := service.NewAuthService(userRepo)
	resetService := service.NewPasswordResetService(userRepo, mail, "http://localhost:8080")
	taskService := service.NewTaskService(taskRepo)

	authController := NewAuthController(authService, resetService, sessions, time.Hour)
	taskController := NewTaskController(taskService)
	dashboardController := NewDashboardController(taskService)

	router := gin.New()
	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
			auth.POST("/logout", authController.Logout)
			auth.POST("/forgot-password", authController.ForgotPassword)
			auth.POST("/reset-password", authController.ResetPassword)
		}

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(sessions))
		{
			protected.GET("/dashboard", dashboardController.GetDashboard)

			protected.GET("/tasks", taskController.GetTasks)
			protected.POST("/tasks", taskController.CreateTask)
			protected.GET("/tasks/:id", taskController.GetTask)
			protected.PUT("/tasks/:id", taskController.UpdateTask)
			protected.DELETE("/tasks/:id", taskController.DeleteTask)
			protected.PUT("/tasks/status/:id", taskController.UpdateTaskStatus)
		}
	}

	return &testEnv{
		router:   router,
		userRepo: userRepo,
		taskRepo: taskRepo,
		mailer:   mail,
	}
}

// do performs a request with an optional JSON body and session cookie.
func (e *testEnv) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// register creates an account and returns the session cookie it sets.
func (e *testEnv) register(t *testing.T, email, password string) *http.Cookie {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/auth/register", gin.H{"email": email, "password": password}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("register returned %d: %s", w.Code, w.Body.String())
	}
	return sessionCookie(t, w)
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), dest); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}
