package task

import (
	"time"
)

type Task struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Assignee    *string    `json:"assignee"`
	DueDate     *time.Time `json:"due_date"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Status string

const StatusTodo Status = "todo"
const StatusInProgress Status = "in_progress"
const StatusDone Status = "done"
const StatusCancelled Status = "cancelled"

// Statuses lists every valid status in declaration order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone, StatusCancelled}

func (s Status) IsValid() bool {
	for _, st := range Statuses {
		if s == st {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers never share pointer fields with the store.
func (t Task) Clone() Task {
	c := t
	if t.Description != nil {
		d := *t.Description
		c.Description = &d
	}
	if t.Assignee != nil {
		a := *t.Assignee
		c.Assignee = &a
	}
	if t.DueDate != nil {
		dd := *t.DueDate
		c.DueDate = &dd
	}
	return c
}

// Fields is the input of a create call. Status defaults to todo.
// The validate tags are the only copy of the field rules; lengths count runes.
type Fields struct {
	Title       string  `validate:"required,max=200"`
	Description *string `validate:"omitempty,max=1000"`
	Assignee    *string `validate:"omitempty,max=100"`
	DueDate     *time.Time
	Status      Status `validate:"omitempty,task_status"`
}

// Filter holds search criteria. Empty strings mean "not set".
type Filter struct {
	Assignee      string
	Status        Status `validate:"omitempty,task_status"`
	TitleContains string
}

func (f Filter) IsEmpty() bool {
	return f.Assignee == "" && f.Status == "" && f.TitleContains == ""
}
