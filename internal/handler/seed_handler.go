package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard/internal/service"
)

// SeedHandler handles seed data endpoints.
type SeedHandler struct {
	workspaces *service.Workspaces
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(workspaces *service.Workspaces) *SeedHandler {
	return &SeedHandler{workspaces: workspaces}
}

// SeedResponse represents the seed response.
type SeedResponse struct {
	Message string             `json:"message"`
	Result  service.SeedResult `json:"result"`
}

// Seed godoc
// @Summary Seed demo users and tasks into this device
// @Description Uses the posted fixture, or the built-in demo fixture when the body is empty.
// @Tags seed
// @Accept json
// @Produce json
// @Param request body service.Fixture false "Fixture"
// @Success 200 {object} SeedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /seed [post]
func (h *SeedHandler) Seed(c echo.Context) error {
	fixture := service.DemoFixture
	if c.Request().ContentLength > 0 {
		var posted service.Fixture
		if err := c.Bind(&posted); err != nil {
			return badRequest("invalid request body", "INVALID_REQUEST")
		}
		if err := c.Validate(&posted); err != nil {
			return badRequest(err.Error(), "VALIDATION_ERROR")
		}
		fixture = posted
	}

	result, err := workspace(c, h.workspaces).Seeder.Seed(c.Request().Context(), fixture)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, SeedResponse{
		Message: "fixture seeded successfully",
		Result:  result,
	})
}
