package store

import (
	"hash/fnv"
	"sync"
)

// DefaultLockStripes is the stripe count used when none is configured.
const DefaultLockStripes = 256

// Locker serializes read-modify-write sequences per namespace within a process.
// Namespaces are hashed onto a fixed set of mutexes, so memory stays bounded no
// matter how many devices show up. Two namespaces may share a stripe.
type Locker struct {
	stripes []sync.Mutex
}

// NewLocker creates a Locker with n stripes, or DefaultLockStripes when n < 1.
func NewLocker(n int) *Locker {
	if n < 1 {
		n = DefaultLockStripes
	}
	return &Locker{stripes: make([]sync.Mutex, n)}
}

// For returns the mutex guarding ns.
func (l *Locker) For(ns string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(ns))
	return &l.stripes[h.Sum32()%uint32(len(l.stripes))]
}

// Size reports the number of stripes.
func (l *Locker) Size() int {
	return len(l.stripes)
}
