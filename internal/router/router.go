package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"taskboard/internal/auth"
	"taskboard/internal/handler"
	"taskboard/internal/view"
)

// Handlers groups everything Register wires.
type Handlers struct {
	Page  *handler.PageHandler
	Auth  *handler.AuthHandler
	Task  *handler.TaskHandler
	Theme *handler.ThemeHandler
	Seed  *handler.SeedHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, tokens *auth.DeviceTokenService, renderer *view.Renderer, h Handlers) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.Renderer = renderer

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Everything below belongs to a device namespace.
	device := e.Group("", auth.DeviceMiddleware(tokens)...)

	device.GET("/", h.Page.Home)
	device.POST("/register", h.Page.Register)
	device.POST("/login", h.Page.Login)
	device.POST("/auth", h.Page.Auth)
	device.POST("/logout", h.Page.Logout)
	device.GET("/tasks/new", h.Page.NewTask)
	device.GET("/tasks/:id/edit", h.Page.EditTask)
	device.POST("/tasks", h.Page.SaveTask)
	device.POST("/tasks/:id/complete", h.Page.CompleteTask)
	device.GET("/tasks/:id/delete", h.Page.ConfirmDelete)
	device.POST("/tasks/:id/delete", h.Page.DeleteTask)
	device.POST("/theme/toggle", h.Page.ToggleTheme)

	api := device.Group("/api")

	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/session", h.Auth.Session)

	api.GET("/board", h.Task.Board)
	api.GET("/tasks", h.Task.List)
	api.POST("/tasks", h.Task.Create)
	api.PUT("/tasks/:id", h.Task.Update)
	api.POST("/tasks/:id/complete", h.Task.Complete)
	api.DELETE("/tasks/:id", h.Task.Delete)

	api.GET("/theme", h.Theme.Get)
	api.POST("/theme/toggle", h.Theme.Toggle)

	api.POST("/seed", h.Seed.Seed)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
