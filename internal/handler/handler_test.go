package handler_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/auth"
	"taskboard/internal/handler"
	"taskboard/internal/model"
	"taskboard/internal/router"
	"taskboard/internal/service"
	"taskboard/internal/store"
	"taskboard/internal/view"
)

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	workspaces := service.NewWorkspaces(store.NewMemoryStore(), store.NewLocker(8), time.Now)
	e := echo.New()
	router.Register(e, auth.NewDeviceTokenService("test-secret", time.Hour), renderer, router.Handlers{
		Page:  handler.NewPageHandler(workspaces),
		Auth:  handler.NewAuthHandler(workspaces),
		Task:  handler.NewTaskHandler(workspaces),
		Theme: handler.NewThemeHandler(workspaces),
		Seed:  handler.NewSeedHandler(workspaces),
	})
	return e
}

// browser keeps the device cookie between requests, like a real browser would.
type browser struct {
	t      *testing.T
	e      *echo.Echo
	cookie *http.Cookie
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	rec := httptest.NewRecorder()
	b.e.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.DeviceCookie {
			b.cookie = c
		}
	}
	return rec
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) form(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return b.do(req)
}

func (b *browser) json(method, path string, body interface{}) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(b.t, err)
		r = strings.NewReader(string(payload))
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return b.do(req)
}

func (b *browser) tasks() model.Partition {
	b.t.Helper()
	rec := b.get("/api/tasks")
	require.Equal(b.t, http.StatusOK, rec.Code, rec.Body.String())
	var p model.Partition
	require.NoError(b.t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func assertRedirectHome(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
}

func TestPages_EndToEnd(t *testing.T) {
	b := &browser{t: t, e: newServer(t)}

	rec := b.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/register"`)
	require.NotNil(t, b.cookie, "first visit issues a device cookie")

	assertRedirectHome(t, b.form("/register", url.Values{"name": {"Ann Lee"}, "email": {"a@x.com"}, "password": {"p"}}))

	rec = b.get("/")
	assert.Contains(t, rec.Body.String(), "Hello, Ann!")
	assert.Contains(t, rec.Body.String(), view.PendingPlaceholder)

	rec = b.get("/tasks/new")
	assert.Contains(t, rec.Body.String(), "Add New Task")

	assertRedirectHome(t, b.form("/tasks", url.Values{"title": {"Buy milk"}, "description": {"2%"}}))

	rec = b.form("/tasks", url.Values{"title": {"Half done"}, "description": {""}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Half done", "form is re-presented unchanged")

	p := b.tasks()
	require.Len(t, p.Pending, 1)
	require.Len(t, p.Completed, 0)
	id := p.Pending[0].ID

	rec = b.get(fmt.Sprintf("/tasks/%d/edit", id))
	assert.Contains(t, rec.Body.String(), "Edit Task")
	assert.Contains(t, rec.Body.String(), "Buy milk")

	assertRedirectHome(t, b.form("/tasks", url.Values{"id": {fmt.Sprint(id)}, "title": {"Buy oat milk"}, "description": {"1L"}}))
	assertRedirectHome(t, b.form(fmt.Sprintf("/tasks/%d/complete", id), nil))

	p = b.tasks()
	require.Len(t, p.Pending, 0)
	require.Len(t, p.Completed, 1)
	assert.Equal(t, "Buy oat milk", p.Completed[0].Title)

	rec = b.get(fmt.Sprintf("/tasks/%d/delete", id))
	assert.Contains(t, rec.Body.String(), service.DeletePrompt)

	assertRedirectHome(t, b.form(fmt.Sprintf("/tasks/%d/delete", id), url.Values{"confirm": {"no"}}))
	assert.Len(t, b.tasks().Completed, 1, "declined prompt keeps the task")

	assertRedirectHome(t, b.form(fmt.Sprintf("/tasks/%d/delete", id), url.Values{"confirm": {"yes"}}))
	assert.Len(t, b.tasks().Completed, 0)

	assertRedirectHome(t, b.form("/theme/toggle", nil))
	assert.Contains(t, b.get("/").Body.String(), `class="dark-theme"`)

	assertRedirectHome(t, b.form("/logout", nil))
	rec = b.form("/login", url.Values{"email": {"ghost@x.com"}, "password": {"p"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Login failed")
	assert.Contains(t, b.get("/").Body.String(), `action="/login"`, "still anonymous")
}

func TestPages_CombinedAuthForm(t *testing.T) {
	b := &browser{t: t, e: newServer(t)}

	assertRedirectHome(t, b.form("/auth", url.Values{"name": {"Ann"}, "email": {"a@x.com"}, "password": {"p"}}))
	assertRedirectHome(t, b.form("/logout", nil))

	rec := b.form("/auth", url.Values{"name": {"Ann again"}, "email": {"a@x.com"}, "password": {"p"}})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email already exists")

	assertRedirectHome(t, b.form("/auth", url.Values{"name": {""}, "email": {"a@x.com"}, "password": {"p"}}))
	assert.Contains(t, b.get("/").Body.String(), "Hello, Ann!")
}

func TestAPI_Flow(t *testing.T) {
	b := &browser{t: t, e: newServer(t)}

	rec := b.get("/api/tasks")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_AUTHENTICATED")

	rec = b.json(http.MethodPost, "/api/auth/register", handler.RegisterRequest{Name: "Ann", Email: "a@x.com", Password: "p"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password")

	rec = b.json(http.MethodPost, "/api/auth/register", handler.RegisterRequest{Name: "Ann", Email: "a@x.com", Password: "p"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "DUPLICATE_EMAIL")

	rec = b.json(http.MethodPost, "/api/tasks", handler.TaskRequest{Title: "", Description: "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")

	rec = b.json(http.MethodPost, "/api/tasks", handler.TaskRequest{Title: "Buy milk", Description: "2%"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var task model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	assert.Equal(t, model.TaskStatusPending, task.Status)

	rec = b.json(http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "CONFIRMATION_REQUIRED")

	rec = b.json(http.MethodPost, fmt.Sprintf("/api/tasks/%d/complete", task.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = b.get("/api/board")
	require.Equal(t, http.StatusOK, rec.Code)
	var page view.Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, view.ViewBoard, page.View)
	assert.Equal(t, 0, page.Pending.Count)
	assert.Equal(t, 1, page.Completed.Count)

	rec = b.json(http.MethodDelete, fmt.Sprintf("/api/tasks/%d?confirm=true", task.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, b.tasks().Completed)

	rec = b.json(http.MethodPut, "/api/tasks/abc", handler.TaskRequest{Title: "a", Description: "b"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_ID")
}

func TestAPI_DevicesAreIsolated(t *testing.T) {
	e := newServer(t)
	first := &browser{t: t, e: e}
	second := &browser{t: t, e: e}

	rec := first.json(http.MethodPost, "/api/auth/register", handler.RegisterRequest{Name: "Ann", Email: "a@x.com", Password: "p"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = second.json(http.MethodPost, "/api/auth/login", handler.LoginRequest{Email: "a@x.com", Password: "p"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = second.get("/api/session")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"authenticated":false}`, rec.Body.String())
}

func TestAPI_ThemeAndSeed(t *testing.T) {
	b := &browser{t: t, e: newServer(t)}

	rec := b.get("/api/theme")
	assert.JSONEq(t, `{"theme":"light-theme"}`, rec.Body.String())
	rec = b.json(http.MethodPost, "/api/theme/toggle", nil)
	assert.JSONEq(t, `{"theme":"dark-theme"}`, rec.Body.String())

	rec = b.json(http.MethodPost, "/api/seed", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var seeded handler.SeedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &seeded))
	assert.Equal(t, 2, seeded.Result.Users)
	assert.Equal(t, 4, seeded.Result.Tasks)

	rec = b.json(http.MethodPost, "/api/auth/login", handler.LoginRequest{Email: "ann@example.com", Password: "demo"})
	require.Equal(t, http.StatusOK, rec.Code)
	p := b.tasks()
	assert.Len(t, p.Pending, 2)
	assert.Len(t, p.Completed, 1)
}

func TestRegister_FormAndJSONAcceptTheSameInput(t *testing.T) {
	form := &browser{t: t, e: newServer(t)}
	api := &browser{t: t, e: newServer(t)}

	assertRedirectHome(t, form.form("/register", url.Values{"name": {"Ann"}, "email": {"ann-at-home"}, "password": {"p"}}))
	rec := api.json(http.MethodPost, "/api/auth/register", handler.RegisterRequest{Name: "Ann", Email: "ann-at-home", Password: "p"})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = form.form("/register", url.Values{"name": {" "}, "email": {"b@x.com"}, "password": {"p"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = api.json(http.MethodPost, "/api/auth/register", handler.RegisterRequest{Name: " ", Email: "b@x.com", Password: "p"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
}
