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

// DeletePrompt is the question asked before a task is removed.
const DeletePrompt = "Are you sure you want to delete this task?"

// Confirmer is a blocking yes/no prompt.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// Answer is a Confirmer with a fixed reply, used when the answer
// was already collected, e.g. from a submitted form.
type Answer bool

// Confirm returns the fixed reply.
func (a Answer) Confirm(context.Context, string) bool {
	return bool(a)
}

// TaskService handles task operations for the signed-in user.
type TaskService interface {
	Create(ctx context.Context, session model.Session, title, description string) (*model.Task, error)
	Update(ctx context.Context, session model.Session, id int64, title, description string) error
	Complete(ctx context.Context, session model.Session, id int64) error
	Delete(ctx context.Context, session model.Session, id int64, confirmer Confirmer) error
	Get(ctx context.Context, session model.Session, id int64) (*model.Task, error)
	ListByUser(ctx context.Context, userID string) (model.Partition, error)
}

type taskService struct {
	tasks repository.TaskRepository
	mu    sync.Locker
}

// NewTaskService creates a new task service.
func NewTaskService(tasks repository.TaskRepository, mu sync.Locker) TaskService {
	return &taskService{tasks: tasks, mu: mu}
}

func validateTask(title, description string) (string, string, error) {
	title, description = strings.TrimSpace(title), strings.TrimSpace(description)
	if title == "" || description == "" {
		return "", "", errors.ErrValidationFailed
	}
	return title, description, nil
}

// Create appends a pending task owned by the session's user.
func (s *taskService) Create(ctx context.Context, session model.Session, title, description string) (*model.Task, error) {
	if !session.Authenticated() {
		return nil, errors.ErrNotAuthenticated
	}
	title, description, err := validateTask(title, description)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := &model.Task{
		UserID:      session.UserID(),
		Title:       title,
		Description: description,
		Status:      model.TaskStatusPending,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// Update replaces title and description. Unknown ids, and ids owned by
// another user, are ignored.
func (s *taskService) Update(ctx context.Context, session model.Session, id int64, title, description string) error {
	if !session.Authenticated() {
		return errors.ErrNotAuthenticated
	}
	title, description, err := validateTask(title, description)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	owned, err := s.owned(ctx, session, id)
	if err != nil || owned == nil {
		return err
	}

	_, err = s.tasks.Update(ctx, id, func(task *model.Task) {
		task.Title = title
		task.Description = description
	})
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// Complete marks the task completed. Completed tasks are left as they are.
func (s *taskService) Complete(ctx context.Context, session model.Session, id int64) error {
	if !session.Authenticated() {
		return errors.ErrNotAuthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	owned, err := s.owned(ctx, session, id)
	if err != nil || owned == nil || !owned.IsPending() {
		return err
	}

	_, err = s.tasks.Update(ctx, id, func(task *model.Task) {
		task.Status = model.TaskStatusCompleted
	})
	if err != nil {
		return fmt.Errorf("complete task: %w", err)
	}
	return nil
}

// Delete removes the task after the confirmer agrees.
// A declined prompt returns ErrConfirmationRequired and changes nothing.
func (s *taskService) Delete(ctx context.Context, session model.Session, id int64, confirmer Confirmer) error {
	if !session.Authenticated() {
		return errors.ErrNotAuthenticated
	}
	if confirmer == nil || !confirmer.Confirm(ctx, DeletePrompt) {
		return errors.ErrConfirmationRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	owned, err := s.owned(ctx, session, id)
	if err != nil || owned == nil {
		return err
	}

	if _, err := s.tasks.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// owned returns the task when it exists and belongs to the session user.
// A nil task with a nil error means the mutation is a no-op.
func (s *taskService) owned(ctx context.Context, session model.Session, id int64) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	if task.UserID != session.UserID() {
		return nil, nil
	}
	return task, nil
}

// Get returns one of the session user's tasks, or repository.ErrNotFound.
func (s *taskService) Get(ctx context.Context, session model.Session, id int64) (*model.Task, error) {
	if !session.Authenticated() {
		return nil, errors.ErrNotAuthenticated
	}
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.UserID != session.UserID() {
		return nil, repository.ErrNotFound
	}
	return task, nil
}

// ListByUser partitions the user's tasks into pending and completed.
func (s *taskService) ListByUser(ctx context.Context, userID string) (model.Partition, error) {
	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return model.Partition{}, fmt.Errorf("list tasks: %w", err)
	}
	return model.PartitionTasks(tasks), nil
}
