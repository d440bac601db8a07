package view

import (
	"fmt"

	"taskboard/internal/model"
)

// View names the top-level screen of a Page.
type View string

const (
	ViewAuth  View = "auth"
	ViewBoard View = "board"
)

// Action is a control rendered on a task card.
type Action string

const (
	ActionEdit     Action = "edit"
	ActionComplete Action = "complete"
	ActionDelete   Action = "delete"
)

// Placeholders shown for an empty partition.
const (
	PendingPlaceholder   = "Great! You have no pending tasks right now. 🎉"
	CompletedPlaceholder = "Finished tasks will appear here."
)

// Card is one rendered task.
type Card struct {
	Number      int      `json:"number"`
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Actions     []Action `json:"actions"`
}

// Has reports whether the card exposes the action.
func (c Card) Has(a Action) bool {
	for _, x := range c.Actions {
		if x == a {
			return true
		}
	}
	return false
}

// Column is one rendered partition.
type Column struct {
	Count       int    `json:"count"`
	Cards       []Card `json:"cards"`
	Placeholder string `json:"placeholder,omitempty"`
}

// Page is the full state of the screen.
type Page struct {
	View      View        `json:"view"`
	Theme     model.Theme `json:"theme"`
	Greeting  string      `json:"greeting,omitempty"`
	Pending   Column      `json:"pending"`
	Completed Column      `json:"completed"`
	Error     string      `json:"error,omitempty"`
	Modal     *Modal      `json:"modal,omitempty"`
	Confirm   *Confirm    `json:"confirm,omitempty"`
}

// Confirm is a pending yes/no question about a task.
type Confirm struct {
	TaskID int64  `json:"taskId"`
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
}

// Render builds the page for a session. It reads nothing but its arguments.
func Render(session model.Session, theme model.Theme, tasks model.Partition) Page {
	if theme == "" {
		theme = model.ThemeLight
	}
	if !session.Authenticated() {
		return Page{View: ViewAuth, Theme: theme}
	}

	return Page{
		View:      ViewBoard,
		Theme:     theme,
		Greeting:  fmt.Sprintf("Hello, %s!", session.User.FirstName()),
		Pending:   column(tasks.Pending, true, PendingPlaceholder),
		Completed: column(tasks.Completed, false, CompletedPlaceholder),
	}
}

func column(tasks []model.Task, pending bool, placeholder string) Column {
	if len(tasks) == 0 {
		return Column{Cards: []Card{}, Placeholder: placeholder}
	}
	cards := make([]Card, 0, len(tasks))
	for i, t := range tasks {
		actions := []Action{ActionEdit}
		if pending {
			actions = append(actions, ActionComplete)
		}
		actions = append(actions, ActionDelete)
		cards = append(cards, Card{
			Number:      i + 1,
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Actions:     actions,
		})
	}
	return Column{Count: len(cards), Cards: cards}
}
