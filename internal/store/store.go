package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys of the persisted layout.
const (
	KeyUsers       = "users"
	KeyTasks       = "tasks"
	KeyCurrentUser = "currentUser"
	KeyTheme       = "theme"
)

// ErrCorrupt is returned when a stored value cannot be decoded.
var ErrCorrupt = errors.New("stored value is corrupt")

// Store is a key-value medium holding raw JSON documents.
// Get returns nil bytes and no error for a missing key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Load decodes the value stored under key into dest.
// A missing key leaves dest untouched and reports false.
func Load(ctx context.Context, s Store, key string, dest interface{}) (bool, error) {
	data, err := s.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w: %v", key, ErrCorrupt, err)
	}
	return true, nil
}

// Save encodes value as JSON and writes it under key.
func Save(ctx context.Context, s Store, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, payload); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

type namespaced struct {
	base   Store
	prefix string
}

// Namespaced scopes every key of base under ns.
func Namespaced(base Store, ns string) Store {
	return &namespaced{base: base, prefix: ns + ":"}
}

func (n *namespaced) Get(ctx context.Context, key string) ([]byte, error) {
	return n.base.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key string, value []byte) error {
	return n.base.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	return n.base.Delete(ctx, n.prefix+key)
}
