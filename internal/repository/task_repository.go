package repository

import (
	"context"
	"fmt"

	"taskboard/internal/model"
	"taskboard/internal/store"
)

// TaskRepository defines persistence operations over the tasks collection.
// Every mutation rewrites the whole collection.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, id int64, fn func(task *model.Task)) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	FindByID(ctx context.Context, id int64) (*model.Task, error)
	ListByUser(ctx context.Context, userID string) ([]model.Task, error)
	List(ctx context.Context) ([]model.Task, error)
}

type taskRepository struct {
	store store.Store
	now   Clock
}

// NewTaskRepository builds a store-backed repository.
func NewTaskRepository(s store.Store, now Clock) TaskRepository {
	return &taskRepository{store: s, now: now}
}

// Create assigns a fresh id to task and appends it.
func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	tasks, err := r.List(ctx)
	if err != nil {
		return err
	}

	var maxID int64
	for _, t := range tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	task.ID = nextID(r.now(), maxID)

	return r.save(ctx, append(tasks, *task))
}

// Update applies fn to the task with the given id and persists the result.
// It reports false without writing when the id is unknown.
func (r *taskRepository) Update(ctx context.Context, id int64, fn func(task *model.Task)) (bool, error) {
	tasks, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			fn(&tasks[i])
			return true, r.save(ctx, tasks)
		}
	}
	return false, nil
}

// Delete removes the task with the given id, reporting whether it existed.
func (r *taskRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tasks, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	kept := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(tasks) {
		return false, nil
	}
	return true, r.save(ctx, kept)
}

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*model.Task, error) {
	tasks, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *taskRepository) ListByUser(ctx context.Context, userID string) ([]model.Task, error) {
	tasks, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	owned := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.UserID == userID {
			owned = append(owned, t)
		}
	}
	return owned, nil
}

func (r *taskRepository) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if _, err := store.Load(ctx, r.store, store.KeyTasks, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) save(ctx context.Context, tasks []model.Task) error {
	if err := store.Save(ctx, r.store, store.KeyTasks, tasks); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}
