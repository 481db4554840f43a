package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tasktracker/application/serviceimpl"
	"tasktracker/domain/services"
	"tasktracker/infrastructure/database"
	"tasktracker/infrastructure/messaging"
	"tasktracker/interfaces/api/handlers"
	"tasktracker/interfaces/api/middleware"
	"tasktracker/interfaces/api/routes"
	"tasktracker/web"
)

type testEnv struct {
	app *fiber.App
	svc services.TaskService
	db  *gorm.DB
}

func setupTestApp(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.NewDatabase(database.DatabaseConfig{
		Driver:     database.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "tasks.db"),
		LogLevel:   gormlogger.Silent,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	svc := serviceimpl.NewTaskService(
		database.NewTaskRepository(db),
		messaging.NewNoopTaskEventPublisher(),
		[]string{"Exercise", "Read"},
	)

	app := fiber.New(fiber.Config{
		Views:        web.NewViewEngine(),
		ErrorHandler: middleware.ErrorHandler(handlers.LayoutMain),
	})
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.RecoverMiddleware())
	routes.SetupRoutes(app, handlers.NewHandlers(&handlers.Services{TaskService: svc}))

	return &testEnv{app: app, svc: svc, db: db}
}

func (e *testEnv) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func (e *testEnv) doJSON(t *testing.T, method, path, body string) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return e.do(t, req)
}

func (e *testEnv) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	return e.do(t, httptest.NewRequest(http.MethodGet, path, nil))
}

func (e *testEnv) postForm(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(t, req)
}

func decode[T any](t *testing.T, body string) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal([]byte(body), &v), body)
	return v
}
