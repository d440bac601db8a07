package service

import (
	"context"
	"fmt"
	"sync"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// ThemeService reads and flips the device colour scheme.
type ThemeService interface {
	Current(ctx context.Context) (model.Theme, error)
	Toggle(ctx context.Context) (model.Theme, error)
}

type themeService struct {
	themes repository.ThemeRepository
	mu     sync.Locker
}

// NewThemeService creates a new theme service.
func NewThemeService(themes repository.ThemeRepository, mu sync.Locker) ThemeService {
	return &themeService{themes: themes, mu: mu}
}

func (s *themeService) Current(ctx context.Context) (model.Theme, error) {
	theme, err := s.themes.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("read theme: %w", err)
	}
	return theme, nil
}

func (s *themeService) Toggle(ctx context.Context) (model.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.Current(ctx)
	if err != nil {
		return "", err
	}
	next := current.Toggle()
	if err := s.themes.Set(ctx, next); err != nil {
		return "", fmt.Errorf("save theme: %w", err)
	}
	return next, nil
}
