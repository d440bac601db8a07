package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard/internal/model"
	"taskboard/internal/service"
)

// ThemeHandler handles theme endpoints of the JSON API.
type ThemeHandler struct {
	workspaces *service.Workspaces
}

// NewThemeHandler creates a new theme handler.
func NewThemeHandler(workspaces *service.Workspaces) *ThemeHandler {
	return &ThemeHandler{workspaces: workspaces}
}

// ThemeResponse carries the current theme token.
type ThemeResponse struct {
	Theme model.Theme `json:"theme"`
}

// Get godoc
// @Summary Current theme
// @Tags theme
// @Produce json
// @Success 200 {object} ThemeResponse
// @Router /theme [get]
func (h *ThemeHandler) Get(c echo.Context) error {
	theme, err := workspace(c, h.workspaces).Themes.Current(c.Request().Context())
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, ThemeResponse{Theme: theme})
}

// Toggle godoc
// @Summary Switch between light and dark theme
// @Tags theme
// @Produce json
// @Success 200 {object} ThemeResponse
// @Router /theme/toggle [post]
func (h *ThemeHandler) Toggle(c echo.Context) error {
	theme, err := workspace(c, h.workspaces).Themes.Toggle(c.Request().Context())
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, ThemeResponse{Theme: theme})
}
