package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard/internal/service"
)

// AuthHandler handles session endpoints of the JSON API.
type AuthHandler struct {
	workspaces *service.Workspaces
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(workspaces *service.Workspaces) *AuthHandler {
	return &AuthHandler{workspaces: workspaces}
}

// RegisterRequest represents a user registration request. Fields are checked
// by the session service so the form and JSON routes accept the same input.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register godoc
// @Summary Register a new user and sign it in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}

	session, err := workspace(c, h.workspaces).Sessions.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusCreated, toSessionResponse(session))
}

// Login godoc
// @Summary Sign in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}

	session, err := workspace(c, h.workspaces).Sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// Logout godoc
// @Summary Sign out
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := workspace(c, h.workspaces).Sessions.Logout(c.Request().Context()); err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "logged out successfully"})
}

// Session godoc
// @Summary Current session of this device
// @Tags auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	session, err := workspace(c, h.workspaces).Sessions.Current(c.Request().Context())
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, toSessionResponse(session))
}
