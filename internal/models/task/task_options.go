package task

import (
	"time"
)

type FieldsOption func(*Fields)

// NewFields builds create input from a title and options. Nil options are skipped.
func NewFields(title string, opts ...FieldsOption) Fields {
	f := Fields{Title: title, Status: StatusTodo}
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

func WithDescription(description string) FieldsOption {
	if description == "" {
		return nil
	}
	return func(f *Fields) {
		f.Description = &description
	}
}

func WithAssignee(assignee string) FieldsOption {
	if assignee == "" {
		return nil
	}
	return func(f *Fields) {
		f.Assignee = &assignee
	}
}

func WithStatus(status Status) FieldsOption {
	if status == "" {
		return nil
	}
	return func(f *Fields) {
		f.Status = status
	}
}

func WithDueDate(dueDate time.Time) FieldsOption {
	if dueDate.IsZero() {
		return nil
	}
	return func(f *Fields) {
		f.DueDate = &dueDate
	}
}
