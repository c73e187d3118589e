package dto

import (
	"taskServer/internal/models/task"
	"time"
)

// CreateTaskRequest is the POST body. Field rules live on task.Fields.
type CreateTaskRequest struct {
	Title       string           `json:"title"`
	Description *string          `json:"description"`
	Assignee    *string          `json:"assignee"`
	DueDate     *Timestamp       `json:"due_date"`
	Status      Nullable[string] `json:"status"`
}

// ToFields converts the request into create input. Like ToPatch it reports a
// status sent as null; an absent status defaults to todo.
func (r CreateTaskRequest) ToFields() (task.Fields, string) {
	if r.Status.Set && r.Status.Null {
		return task.Fields{}, "status"
	}
	fields := task.Fields{
		Title:       r.Title,
		Description: r.Description,
		Assignee:    r.Assignee,
		Status:      task.Status(r.Status.Value),
	}
	if r.DueDate != nil {
		due := r.DueDate.Time
		fields.DueDate = &due
	}
	return fields, ""
}

// UpdateTaskRequest distinguishes absent keys from explicit nulls.
type UpdateTaskRequest struct {
	Title       Nullable[string]    `json:"title"`
	Description Nullable[string]    `json:"description"`
	Assignee    Nullable[string]    `json:"assignee"`
	DueDate     Nullable[Timestamp] `json:"due_date"`
	Status      Nullable[string]    `json:"status"`
}

// ToPatch converts the request into a patch. It reports the name of the first
// non-nullable field that was sent as null.
func (r UpdateTaskRequest) ToPatch() (task.Patch, string) {
	var patch task.Patch

	if r.Title.Set {
		if r.Title.Null {
			return task.Patch{}, "title"
		}
		title := r.Title.Value
		patch.Title = &title
	}
	if r.Status.Set {
		if r.Status.Null {
			return task.Patch{}, "status"
		}
		status := task.Status(r.Status.Value)
		patch.Status = &status
	}
	patch.Description = toClearable(r.Description)
	patch.Assignee = toClearable(r.Assignee)
	if r.DueDate.Set {
		if r.DueDate.Null {
			patch.DueDate = task.Clear[time.Time]()
		} else {
			patch.DueDate = task.Value(r.DueDate.Value.Time)
		}
	}
	return patch, ""
}

func toClearable(n Nullable[string]) task.Clearable[string] {
	if !n.Set {
		return task.Clearable[string]{}
	}
	if n.Null {
		return task.Clear[string]()
	}
	return task.Value(n.Value)
}

type TaskResponse struct {
	ID          int        `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description *string    `json:"description" yaml:"description"`
	Assignee    *string    `json:"assignee" yaml:"assignee"`
	DueDate     *time.Time `json:"due_date" yaml:"due_date"`
	Status      string     `json:"status" yaml:"status"`
	CreatedAt   time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" yaml:"updated_at"`
}

func FromTask(t task.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Assignee:    t.Assignee,
		DueDate:     t.DueDate,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func FromTaskList(tasks []task.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t)
	}
	return result
}

type HealthResponse struct {
	Status     string    `json:"status" yaml:"status"`
	Service    string    `json:"service" yaml:"service"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
	TotalTasks int       `json:"total_tasks" yaml:"total_tasks"`
}

type MessageResponse struct {
	Message      string `json:"message" yaml:"message"`
	DeletedCount *int   `json:"deleted_count,omitempty" yaml:"deleted_count,omitempty"`
}

type InfoResponse struct {
	Message     string            `json:"message" yaml:"message"`
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description" yaml:"description"`
	Version     string            `json:"version" yaml:"version"`
	Endpoints   map[string]string `json:"endpoints" yaml:"endpoints"`
}

type ErrorResponse struct {
	Error   string         `json:"error" yaml:"error"`
	Message string         `json:"message" yaml:"message"`
	Details map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
}
