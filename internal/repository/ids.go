package repository

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a record does not exist in its collection.
var ErrNotFound = errors.New("record not found")

// Clock returns the current time. Repositories take one so tests can pin it.
type Clock func() time.Time

// nextID derives an id from the clock in milliseconds, bumped past maxID
// when two records are created within the same millisecond.
func nextID(now time.Time, maxID int64) int64 {
	id := now.UnixMilli()
	if id <= maxID {
		id = maxID + 1
	}
	return id
}
