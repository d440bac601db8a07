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

// SessionService decides which user is signed in on a device.
type SessionService interface {
	Register(ctx context.Context, name, email, password string) (model.Session, error)
	Login(ctx context.Context, email, password string) (model.Session, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (model.Session, error)
}

type sessionService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	mu       sync.Locker
}

// NewSessionService creates a new session service.
func NewSessionService(users repository.UserRepository, sessions repository.SessionRepository, mu sync.Locker) SessionService {
	return &sessionService{
		users:    users,
		sessions: sessions,
		mu:       mu,
	}
}

// Register creates a user and signs it in.
func (s *sessionService) Register(ctx context.Context, name, email, password string) (model.Session, error) {
	name, email, password = strings.TrimSpace(name), strings.TrimSpace(email), strings.TrimSpace(password)
	if name == "" || email == "" || password == "" {
		return model.Session{}, errors.ErrValidationFailed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return model.Session{}, errors.ErrDuplicateEmail
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return model.Session{}, fmt.Errorf("check user existence: %w", err)
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: password,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return model.Session{}, fmt.Errorf("create user: %w", err)
	}

	if err := s.sessions.SetCurrentUserID(ctx, user.ID); err != nil {
		return model.Session{}, fmt.Errorf("start session: %w", err)
	}
	return model.Session{User: user}, nil
}

// Login signs in the user whose email and password match exactly.
func (s *sessionService) Login(ctx context.Context, email, password string) (model.Session, error) {
	email, password = strings.TrimSpace(email), strings.TrimSpace(password)

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Session{}, errors.ErrInvalidCredentials
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("find user: %w", err)
	}
	if user.Password != password {
		return model.Session{}, errors.ErrInvalidCredentials
	}

	if err := s.sessions.SetCurrentUserID(ctx, user.ID); err != nil {
		return model.Session{}, fmt.Errorf("start session: %w", err)
	}
	return model.Session{User: user}, nil
}

// Logout clears the session unconditionally.
func (s *sessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Current resolves the stored user id against the users collection.
// A dangling id yields the anonymous session.
func (s *sessionService) Current(ctx context.Context) (model.Session, error) {
	id, err := s.sessions.CurrentUserID(ctx)
	if err != nil {
		return model.Session{}, fmt.Errorf("read session: %w", err)
	}
	if id == "" {
		return model.Session{}, nil
	}

	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Session{}, nil
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("find user: %w", err)
	}
	return model.Session{User: user}, nil
}
