package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"taskboard/docs"
	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/db"
	"taskboard/internal/handler"
	"taskboard/internal/router"
	"taskboard/internal/service"
	"taskboard/internal/store"
	"taskboard/internal/view"
)

// @title Task Board API
// @version 1.0
// @description Personal task board with per-device storage.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	st, closeStore, err := db.OpenStore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("store init: %v", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Printf("store close: %v", err)
		}
	}()
	log.Printf("Using %s store", cfg.StoreDriver)

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	workspaces := service.NewWorkspaces(st, store.NewLocker(cfg.LockStripes), time.Now)
	tokens := auth.NewDeviceTokenService(cfg.DeviceSecret, cfg.DeviceTokenTTL)

	router.Register(e, tokens, renderer, router.Handlers{
		Page:  handler.NewPageHandler(workspaces),
		Auth:  handler.NewAuthHandler(workspaces),
		Task:  handler.NewTaskHandler(workspaces),
		Theme: handler.NewThemeHandler(workspaces),
		Seed:  handler.NewSeedHandler(workspaces),
	})

	if cfg.SwaggerHost != "" {
		// SwaggerHost may already include a scheme
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
		docs.SwaggerInfo.Host = host
	} else {
		docs.SwaggerInfo.Host = "localhost:" + cfg.ServerPort
	}
	log.Printf("Swagger documentation available at: http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
