package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// Fixture describes demo users and their tasks.
type Fixture struct {
	Users []FixtureUser `json:"users" validate:"dive"`
}

// FixtureUser is one user of a Fixture.
type FixtureUser struct {
	Name     string        `json:"name" validate:"required"`
	Email    string        `json:"email" validate:"required,email"`
	Password string        `json:"password" validate:"required"`
	Tasks    []FixtureTask `json:"tasks" validate:"dive"`
}

// FixtureTask is one task of a FixtureUser.
type FixtureTask struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Completed   bool   `json:"completed"`
}

// SeedResult counts what a seed run changed.
type SeedResult struct {
	Users   int `json:"users"`
	Tasks   int `json:"tasks"`
	Skipped int `json:"skipped"`
}

// DemoFixture is the built-in fixture used when no file is given.
var DemoFixture = Fixture{
	Users: []FixtureUser{
		{
			Name:     "Ann Example",
			Email:    "ann@example.com",
			Password: "demo",
			Tasks: []FixtureTask{
				{Title: "Buy milk", Description: "2%"},
				{Title: "Book dentist", Description: "Ask for a morning slot"},
				{Title: "Water plants", Description: "Balcony and kitchen", Completed: true},
			},
		},
		{
			Name:     "Ben Example",
			Email:    "ben@example.com",
			Password: "demo",
			Tasks: []FixtureTask{
				{Title: "Renew passport", Description: "Photos first"},
			},
		},
	},
}

// SeedService loads fixtures into a namespace without touching its session.
type SeedService interface {
	Seed(ctx context.Context, fixture Fixture) (SeedResult, error)
}

type seedService struct {
	users repository.UserRepository
	tasks repository.TaskRepository
	mu    sync.Locker
}

// NewSeedService creates a new seed service.
func NewSeedService(users repository.UserRepository, tasks repository.TaskRepository, mu sync.Locker) SeedService {
	return &seedService{users: users, tasks: tasks, mu: mu}
}

// Seed creates each fixture user that does not exist yet, along with its tasks.
// Users whose email is taken are skipped together with their tasks.
func (s *seedService) Seed(ctx context.Context, fixture Fixture) (SeedResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result SeedResult
	for _, fu := range fixture.Users {
		email := strings.TrimSpace(fu.Email)
		existing, err := s.users.FindByEmail(ctx, email)
		if err == nil && existing != nil {
			result.Skipped++
			continue
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return result, fmt.Errorf("seed user %s: %w", email, err)
		}

		user := &model.User{
			Name:     strings.TrimSpace(fu.Name),
			Email:    email,
			Password: strings.TrimSpace(fu.Password),
		}
		if err := s.users.Create(ctx, user); err != nil {
			return result, fmt.Errorf("create user %s: %w", email, err)
		}
		result.Users++

		for _, ft := range fu.Tasks {
			title, description, err := validateTask(ft.Title, ft.Description)
			if err != nil {
				return result, fmt.Errorf("seed task for %s: %w", email, err)
			}
			status := model.TaskStatusPending
			if ft.Completed {
				status = model.TaskStatusCompleted
			}
			task := &model.Task{
				UserID:      user.ID,
				Title:       title,
				Description: description,
				Status:      status,
			}
			if err := s.tasks.Create(ctx, task); err != nil {
				return result, fmt.Errorf("create task for %s: %w", email, err)
			}
			result.Tasks++
		}
	}
	return result, nil
}
