package repository

import (
	"bytes"
	"context"
	"encoding/json"

	"taskboard/internal/store"
)

// SessionRepository persists which user id is signed in.
type SessionRepository interface {
	CurrentUserID(ctx context.Context) (string, error)
	SetCurrentUserID(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// sessionRef decodes either a bare id string or a full user object
// written by older versions of the board.
type sessionRef struct {
	ID string
}

func (s *sessionRef) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		var legacy struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(data, &legacy); err != nil {
			return err
		}
		s.ID = legacy.ID
		return nil
	}
	return json.Unmarshal(data, &s.ID)
}

type sessionRepository struct {
	store store.Store
}

// NewSessionRepository builds a store-backed session repository.
func NewSessionRepository(s store.Store) SessionRepository {
	return &sessionRepository{store: s}
}

func (r *sessionRepository) CurrentUserID(ctx context.Context) (string, error) {
	var ref sessionRef
	if _, err := store.Load(ctx, r.store, store.KeyCurrentUser, &ref); err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (r *sessionRepository) SetCurrentUserID(ctx context.Context, id string) error {
	return store.Save(ctx, r.store, store.KeyCurrentUser, id)
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, store.KeyCurrentUser)
}
