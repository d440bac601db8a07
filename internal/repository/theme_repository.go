package repository

import (
	"context"

	"taskboard/internal/model"
	"taskboard/internal/store"
)

// ThemeRepository persists the device colour scheme.
type ThemeRepository interface {
	Get(ctx context.Context) (model.Theme, error)
	Set(ctx context.Context, theme model.Theme) error
}

type themeRepository struct {
	store store.Store
}

// NewThemeRepository builds a store-backed theme repository.
func NewThemeRepository(s store.Store) ThemeRepository {
	return &themeRepository{store: s}
}

// Get returns the stored theme, or the light theme when none is stored.
func (r *themeRepository) Get(ctx context.Context) (model.Theme, error) {
	theme := model.ThemeLight
	if _, err := store.Load(ctx, r.store, store.KeyTheme, &theme); err != nil {
		return "", err
	}
	if theme == "" {
		theme = model.ThemeLight
	}
	return theme, nil
}

func (r *themeRepository) Set(ctx context.Context, theme model.Theme) error {
	return store.Save(ctx, r.store, store.KeyTheme, theme)
}
