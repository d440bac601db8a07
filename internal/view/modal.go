package view

import (
	"context"

	"taskboard/internal/errors"
	"taskboard/internal/model"
)

// ModalMode selects whether a submit creates or updates.
type ModalMode string

const (
	ModalAdd  ModalMode = "add"
	ModalEdit ModalMode = "edit"
)

// Modal is the transient task form. Nothing in it is persisted until Submit.
type Modal struct {
	Mode        ModalMode `json:"mode"`
	Heading     string    `json:"heading"`
	TaskID      int64     `json:"taskId,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Error       string    `json:"error,omitempty"`
}

// TaskSaver is the part of the task service a modal submits to.
type TaskSaver interface {
	Create(ctx context.Context, session model.Session, title, description string) (*model.Task, error)
	Update(ctx context.Context, session model.Session, id int64, title, description string) error
}

// OpenAdd returns a blank add form.
func OpenAdd() *Modal {
	return &Modal{Mode: ModalAdd, Heading: "Add New Task"}
}

// OpenEdit returns a form pre-filled from task.
func OpenEdit(task model.Task) *Modal {
	return &Modal{
		Mode:        ModalEdit,
		Heading:     "Edit Task",
		TaskID:      task.ID,
		Title:       task.Title,
		Description: task.Description,
	}
}

// FromForm rebuilds a modal from submitted values. A zero id means add.
func FromForm(id int64, title, description string) *Modal {
	if id == 0 {
		m := OpenAdd()
		m.Title, m.Description = title, description
		return m
	}
	return OpenEdit(model.Task{ID: id, Title: title, Description: description})
}

// Submit saves the form. On a validation failure the modal is returned
// with its values intact and an inline message; it is nil once saved.
func (m *Modal) Submit(ctx context.Context, saver TaskSaver, session model.Session) (*Modal, error) {
	var err error
	if m.TaskID == 0 {
		_, err = saver.Create(ctx, session, m.Title, m.Description)
	} else {
		err = saver.Update(ctx, session, m.TaskID, m.Title, m.Description)
	}

	if errors.Is(err, errors.ErrValidationFailed) {
		open := *m
		open.Error = "Please fill in both the title and the description."
		return &open, err
	}
	if err != nil {
		return m, err
	}
	return nil, nil
}
