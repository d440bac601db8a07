package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/internal/view"
)

// Inline messages shown on the auth forms.
const (
	msgDuplicateEmail = "Registration failed: Email already exists. Please login."
	msgMissingFields  = "Registration failed: Please fill in every field."
	msgBadCredentials = "Login failed: Invalid email or password."
)

// PageHandler serves the server-rendered board.
type PageHandler struct {
	workspaces *service.Workspaces
}

// NewPageHandler creates a new page handler.
func NewPageHandler(workspaces *service.Workspaces) *PageHandler {
	return &PageHandler{workspaces: workspaces}
}

// render re-reads the store, lets decorate add transient state and writes the page.
func (h *PageHandler) render(c echo.Context, ws *service.Workspace, status int, decorate func(p *view.Page)) error {
	page, err := buildPage(c, ws)
	if err != nil {
		return apiError(c, err)
	}
	if decorate != nil {
		decorate(&page)
	}
	return c.Render(status, "page.html", page)
}

func home(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/")
}

// boardSession returns the signed-in session, or false when the caller
// should be sent back to the auth view.
func boardSession(c echo.Context, ws *service.Workspace) (model.Session, bool, error) {
	session, err := ws.Sessions.Current(c.Request().Context())
	if err != nil {
		return model.Session{}, false, apiError(c, err)
	}
	return session, session.Authenticated(), nil
}

// Home renders the auth view or the board.
func (h *PageHandler) Home(c echo.Context) error {
	return h.render(c, workspace(c, h.workspaces), http.StatusOK, nil)
}

// Register handles the registration form.
func (h *PageHandler) Register(c echo.Context) error {
	ws := workspace(c, h.workspaces)
	_, err := ws.Sessions.Register(c.Request().Context(), c.FormValue("name"), c.FormValue("email"), c.FormValue("password"))
	switch {
	case err == nil:
		return home(c)
	case errors.Is(err, errors.ErrDuplicateEmail):
		return h.render(c, ws, http.StatusConflict, func(p *view.Page) { p.Error = msgDuplicateEmail })
	case errors.Is(err, errors.ErrValidationFailed):
		return h.render(c, ws, http.StatusBadRequest, func(p *view.Page) { p.Error = msgMissingFields })
	default:
		return apiError(c, err)
	}
}

// Login handles the login form.
func (h *PageHandler) Login(c echo.Context) error {
	ws := workspace(c, h.workspaces)
	_, err := ws.Sessions.Login(c.Request().Context(), c.FormValue("email"), c.FormValue("password"))
	switch {
	case err == nil:
		return home(c)
	case errors.Is(err, errors.ErrInvalidCredentials):
		return h.render(c, ws, http.StatusUnauthorized, func(p *view.Page) { p.Error = msgBadCredentials })
	default:
		return apiError(c, err)
	}
}

// Auth accepts the single combined form of older pages: a non-empty
// name registers, otherwise it logs in.
func (h *PageHandler) Auth(c echo.Context) error {
	if strings.TrimSpace(c.FormValue("name")) != "" {
		return h.Register(c)
	}
	return h.Login(c)
}

// Logout signs the device out.
func (h *PageHandler) Logout(c echo.Context) error {
	if err := workspace(c, h.workspaces).Sessions.Logout(c.Request().Context()); err != nil {
		return apiError(c, err)
	}
	return home(c)
}

// NewTask opens the blank task form.
func (h *PageHandler) NewTask(c echo.Context) error {
	ws := workspace(c, h.workspaces)
	_, ok, err := boardSession(c, ws)
	if err != nil {
		return err
	}
	if !ok {
		return home(c)
	}
	return h.render(c, ws, http.StatusOK, func(p *view.Page) { p.Modal = view.OpenAdd() })
}

// EditTask opens the task form pre-filled with an existing task.
func (h *PageHandler) EditTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	ws := workspace(c, h.workspaces)
	session, ok, err := boardSession(c, ws)
	if err != nil {
		return err
	}
	if !ok {
		return home(c)
	}

	task, err := ws.Tasks.Get(c.Request().Context(), session, id)
	if errors.Is(err, repository.ErrNotFound) {
		return home(c)
	}
	if err != nil {
		return apiError(c, err)
	}
	return h.render(c, ws, http.StatusOK, func(p *view.Page) { p.Modal = view.OpenEdit(*task) })
}

// SaveTask submits the task form; the hidden id decides create or update.
func (h *PageHandler) SaveTask(c echo.Context) error {
	ws := workspace(c, h.workspaces)
	session, ok, err := boardSession(c, ws)
	if err != nil {
		return err
	}
	if !ok {
		return home(c)
	}

	var id int64
	if raw := strings.TrimSpace(c.FormValue("id")); raw != "" {
		if id, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return badRequest("invalid task id", "INVALID_ID")
		}
	}

	modal := view.FromForm(id, c.FormValue("title"), c.FormValue("description"))
	open, err := modal.Submit(c.Request().Context(), ws.Tasks, session)
	switch {
	case err == nil:
		return home(c)
	case errors.Is(err, errors.ErrValidationFailed):
		return h.render(c, ws, http.StatusBadRequest, func(p *view.Page) { p.Modal = open })
	default:
		return apiError(c, err)
	}
}

// CompleteTask marks a pending task completed.
func (h *PageHandler) CompleteTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	ws := workspace(c, h.workspaces)
	session, ok, err := boardSession(c, ws)
	if err != nil {
		return err
	}
	if !ok {
		return home(c)
	}
	if err := ws.Tasks.Complete(c.Request().Context(), session, id); err != nil {
		return apiError(c, err)
	}
	return home(c)
}

// ConfirmDelete asks before a task is removed.
func (h *PageHandler) ConfirmDelete(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	ws := workspace(c, h.workspaces)
	session, ok, err := boardSession(c, ws)
	if err != nil {
		return err
	}
	if !ok {
		return home(c)
	}

	task, err := ws.Tasks.Get(c.Request().Context(), session, id)
	if errors.Is(err, repository.ErrNotFound) {
		return home(c)
	}
	if err != nil {
		return apiError(c, err)
	}
	return h.render(c, ws, http.StatusOK, func(p *view.Page) {
		p.Confirm = &view.Confirm{TaskID: task.ID, Title: task.Title, Prompt: service.DeletePrompt}
	})
}

// DeleteTask removes the task when the prompt was answered yes.
func (h *PageHandler) DeleteTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	ws := workspace(c, h.workspaces)
	session, ok, err := boardSession(c, ws)
	if err != nil {
		return err
	}
	if !ok {
		return home(c)
	}

	answer := service.Answer(c.FormValue("confirm") == "yes")
	err = ws.Tasks.Delete(c.Request().Context(), session, id, answer)
	if err != nil && !errors.Is(err, errors.ErrConfirmationRequired) {
		return apiError(c, err)
	}
	return home(c)
}

// ToggleTheme flips the colour scheme.
func (h *PageHandler) ToggleTheme(c echo.Context) error {
	if _, err := workspace(c, h.workspaces).Themes.Toggle(c.Request().Context()); err != nil {
		return apiError(c, err)
	}
	return home(c)
}
