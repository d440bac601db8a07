package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/service"
	"taskboard/internal/view"
)

// TaskHandler handles task endpoints of the JSON API.
type TaskHandler struct {
	workspaces *service.Workspaces
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(workspaces *service.Workspaces) *TaskHandler {
	return &TaskHandler{workspaces: workspaces}
}

// TaskRequest represents a create or update request. Emptiness is checked
// by the task service so both surfaces report it the same way.
type TaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// sessionOf resolves the device session and rejects anonymous callers.
func sessionOf(c echo.Context, ws *service.Workspace) (model.Session, error) {
	session, err := ws.Sessions.Current(c.Request().Context())
	if err != nil {
		return model.Session{}, apiError(c, err)
	}
	if !session.Authenticated() {
		return model.Session{}, apiError(c, errors.ErrNotAuthenticated)
	}
	return session, nil
}

// Board godoc
// @Summary Rendered board state for this device
// @Tags tasks
// @Produce json
// @Success 200 {object} view.Page
// @Router /board [get]
func (h *TaskHandler) Board(c echo.Context) error {
	page, err := buildPage(c, workspace(c, h.workspaces))
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// List godoc
// @Summary List the signed-in user's tasks, split by status
// @Tags tasks
// @Produce json
// @Success 200 {object} model.Partition
// @Failure 401 {object} errors.ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	ws := workspace(c, h.workspaces)
	session, err := sessionOf(c, ws)
	if err != nil {
		return err
	}
	partition, err := ws.Tasks.ListByUser(c.Request().Context(), session.UserID())
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, partition)
}

// Create godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body TaskRequest true "Task data"
// @Success 201 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	ws := workspace(c, h.workspaces)
	session, err := sessionOf(c, ws)
	if err != nil {
		return err
	}

	task, err := ws.Tasks.Create(c.Request().Context(), session, req.Title, req.Description)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

// Update godoc
// @Summary Update a task's title and description
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param request body TaskRequest true "Task data"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	ws := workspace(c, h.workspaces)
	session, err := sessionOf(c, ws)
	if err != nil {
		return err
	}

	if err := ws.Tasks.Update(c.Request().Context(), session, id, req.Title, req.Description); err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "task updated"})
}

// Complete godoc
// @Summary Mark a task completed
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /tasks/{id}/complete [post]
func (h *TaskHandler) Complete(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	ws := workspace(c, h.workspaces)
	session, err := sessionOf(c, ws)
	if err != nil {
		return err
	}

	if err := ws.Tasks.Complete(c.Request().Context(), session, id); err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "task completed"})
}

// Delete godoc
// @Summary Delete a task
// @Description Requires confirm=true; without it nothing is deleted.
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Param confirm query bool true "Confirmation"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	ws := workspace(c, h.workspaces)
	session, err := sessionOf(c, ws)
	if err != nil {
		return err
	}

	confirmed := service.Answer(c.QueryParam("confirm") == "true")
	if err := ws.Tasks.Delete(c.Request().Context(), session, id, confirmed); err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "task deleted"})
}

// buildPage re-reads the store and renders the page for the device.
func buildPage(c echo.Context, ws *service.Workspace) (view.Page, error) {
	ctx := c.Request().Context()
	session, err := ws.Sessions.Current(ctx)
	if err != nil {
		return view.Page{}, err
	}
	theme, err := ws.Themes.Current(ctx)
	if err != nil {
		return view.Page{}, err
	}
	var partition model.Partition
	if session.Authenticated() {
		partition, err = ws.Tasks.ListByUser(ctx, session.UserID())
		if err != nil {
			return view.Page{}, err
		}
	}
	return view.Render(session, theme, partition), nil
}
