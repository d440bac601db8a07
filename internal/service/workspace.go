package service

import (
	"sync"

	"taskboard/internal/repository"
	"taskboard/internal/store"
)

// Workspace bundles the services of one device namespace.
type Workspace struct {
	Sessions SessionService
	Tasks    TaskService
	Themes   ThemeService
	Seeder   SeedService
}

// NewWorkspace wires services over s. Mutations are serialized on mu.
func NewWorkspace(s store.Store, mu sync.Locker, now repository.Clock) *Workspace {
	users := repository.NewUserRepository(s, now)
	tasks := repository.NewTaskRepository(s, now)
	return &Workspace{
		Sessions: NewSessionService(users, repository.NewSessionRepository(s), mu),
		Tasks:    NewTaskService(tasks, mu),
		Themes:   NewThemeService(repository.NewThemeRepository(s), mu),
		Seeder:   NewSeedService(users, tasks, mu),
	}
}

// Workspaces hands out a Workspace per device namespace over one base store.
type Workspaces struct {
	base  store.Store
	locks *store.Locker
	now   repository.Clock
}

// NewWorkspaces creates a factory over base. Mutations of a namespace are
// serialized on the stripe locks hands out for it.
func NewWorkspaces(base store.Store, locks *store.Locker, now repository.Clock) *Workspaces {
	return &Workspaces{base: base, locks: locks, now: now}
}

// For returns the workspace of namespace ns.
func (w *Workspaces) For(ns string) *Workspace {
	return NewWorkspace(store.Namespaced(w.base, ns), w.locks.For(ns), w.now)
}
