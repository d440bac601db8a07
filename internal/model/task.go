package model

// TaskStatus represents the status of a task.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// Task is a personal to-do item owned by one user.
type Task struct {
	ID          int64      `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
}

// IsPending reports whether the task still awaits completion.
func (t Task) IsPending() bool {
	return t.Status == TaskStatusPending
}

// Partition splits a user's tasks by status, keeping stored order.
type Partition struct {
	Pending   []Task `json:"pending"`
	Completed []Task `json:"completed"`
}

// PartitionTasks builds a Partition from tasks in collection order.
func PartitionTasks(tasks []Task) Partition {
	p := Partition{Pending: []Task{}, Completed: []Task{}}
	for _, t := range tasks {
		switch t.Status {
		case TaskStatusPending:
			p.Pending = append(p.Pending, t)
		case TaskStatusCompleted:
			p.Completed = append(p.Completed, t)
		}
	}
	return p
}
