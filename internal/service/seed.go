package service

import (
	"context"
	"fmt"
	"taskServer/internal/models/task"
	"time"
)

// SampleTasks returns the demonstration tasks loaded at startup.
func SampleTasks() []task.Fields {
	return []task.Fields{
		task.NewFields("Setup development environment",
			task.WithDescription("Install Go, the linters and editor extensions"),
			task.WithAssignee("developer@example.com"),
			task.WithDueDate(time.Date(2025, 1, 25, 17, 0, 0, 0, time.UTC)),
			task.WithStatus(task.StatusDone),
		),
		task.NewFields("Implement HTTP server",
			task.WithDescription("Create a REST API with CRUD operations for tasks"),
			task.WithAssignee("developer@example.com"),
			task.WithDueDate(time.Date(2025, 1, 22, 12, 0, 0, 0, time.UTC)),
			task.WithStatus(task.StatusInProgress),
		),
		task.NewFields("Write documentation",
			task.WithDescription("Document the API endpoints and usage examples"),
			task.WithAssignee("tech-writer@example.com"),
			task.WithDueDate(time.Date(2025, 1, 30, 23, 59, 59, 0, time.UTC)),
			task.WithStatus(task.StatusTodo),
		),
	}
}

func (s *TaskService) Seed(ctx context.Context, samples []task.Fields) error {
	for _, fields := range samples {
		if _, err := s.CreateTask(ctx, fields); err != nil {
			return fmt.Errorf("seed task %q: %w", fields.Title, err)
		}
	}
	return nil
}
