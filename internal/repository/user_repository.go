package repository

import (
	"context"
	"fmt"
	"strconv"

	"taskboard/internal/model"
	"taskboard/internal/store"
)

// UserRepository defines persistence operations over the users collection.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

type userRepository struct {
	store store.Store
	now   Clock
}

// NewUserRepository builds a store-backed repository.
func NewUserRepository(s store.Store, now Clock) UserRepository {
	return &userRepository{store: s, now: now}
}

// Create assigns a fresh id to user and appends it to the collection.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	users, err := r.List(ctx)
	if err != nil {
		return err
	}

	var maxID int64
	for _, u := range users {
		if n, err := strconv.ParseInt(u.ID, 10, 64); err == nil && n > maxID {
			maxID = n
		}
	}
	user.ID = strconv.FormatInt(nextID(r.now(), maxID), 10)

	users = append(users, *user)
	if err := store.Save(ctx, r.store, store.KeyUsers, users); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if _, err := store.Load(ctx, r.store, store.KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}
