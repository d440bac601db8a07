package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"taskboard/internal/config"
	"taskboard/internal/db"
	"taskboard/internal/service"
	"taskboard/internal/store"
)

func main() {
	device := flag.String("device", "", "device namespace to seed (the device_id claim of a browser cookie)")
	file := flag.String("file", "", "fixture JSON file; the built-in demo fixture is used when empty")
	flag.Parse()

	log.Println("Starting seed script...")
	if *device == "" {
		log.Fatal("-device is required")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	cfg := config.Load()

	ctx := context.Background()
	st, closeStore, err := db.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()
	log.Printf("Connected to %s store", cfg.StoreDriver)

	fixture := service.DemoFixture
	if *file != "" {
		log.Printf("Reading fixture from: %s", *file)
		if fixture, err = readFixture(*file); err != nil {
			log.Fatalf("Failed to read fixture: %v", err)
		}
	}

	ws := service.NewWorkspaces(st, store.NewLocker(cfg.LockStripes), time.Now).For(*device)
	result, err := ws.Seeder.Seed(ctx, fixture)
	if err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Users created: %d", result.Users)
	log.Printf("  - Tasks created: %d", result.Tasks)
	log.Printf("  - Users skipped (email taken): %d", result.Skipped)
}

// readFixture loads and validates a fixture file.
func readFixture(path string) (service.Fixture, error) {
	var fixture service.Fixture
	body, err := os.ReadFile(path)
	if err != nil {
		return fixture, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(body, &fixture); err != nil {
		return fixture, fmt.Errorf("parse JSON: %w", err)
	}
	if err := validator.New().Struct(fixture); err != nil {
		return fixture, fmt.Errorf("validate fixture: %w", err)
	}
	return fixture, nil
}
