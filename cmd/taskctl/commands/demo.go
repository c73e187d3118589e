package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"taskServer/internal/client"
	"taskServer/internal/handlers/dto"
	"time"

	"github.com/urfave/cli/v3"
)

func demoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "Walk through the API: create, update, filter and complete a task",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "due-in",
				Usage: "Days until the demo task is due",
				Value: 7,
			},
		},
		Action: demoAction,
	}
}

func demoAction(ctx context.Context, c *cli.Command) error {
	api := newClient(c)
	w := writer(c)

	info, err := api.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get server info: %w", err)
	}
	fmt.Fprintf(w, "Server: %s %s\n\n", info.Title, info.Version)

	tasks, err := api.ListTasks(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}
	fmt.Fprintln(w, "Initial tasks:")
	for _, t := range tasks {
		fmt.Fprintf(w, "  %d. %s [%s] - %s\n", t.ID, t.Title, t.Status, deref(t.Assignee))
	}
	fmt.Fprintln(w)

	due := time.Now().UTC().AddDate(0, 0, int(c.Int("due-in")))
	created, err := api.CreateTask(ctx, map[string]any{
		"title":       "Demo Task",
		"description": "This task was created by the demo command",
		"assignee":    "demo@example.com",
		"due_date":    due.Format(time.RFC3339),
		"status":      "todo",
	})
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	fmt.Fprintf(w, "Created task %d: %s\n", created.ID, created.Title)

	updated, err := api.UpdateTask(ctx, created.ID, map[string]any{
		"status":      "in_progress",
		"description": "Task updated by demo command - now in progress!",
	})
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	fmt.Fprintf(w, "Updated task %d: status = %s\n\n", updated.ID, updated.Status)

	inProgress, err := api.ListTasks(ctx, &client.ListTasksRequest{Status: "in_progress"})
	if err != nil {
		return fmt.Errorf("failed to filter tasks: %w", err)
	}
	fmt.Fprintln(w, "Tasks in progress:")
	for _, t := range inProgress {
		fmt.Fprintf(w, "  %d. %s - %s\n", t.ID, t.Title, deref(t.Assignee))
	}
	fmt.Fprintln(w)

	mine, err := api.ListTasks(ctx, &client.ListTasksRequest{Assignee: "demo@example.com"})
	if err != nil {
		return fmt.Errorf("failed to search tasks: %w", err)
	}
	fmt.Fprintln(w, "Tasks assigned to demo@example.com:")
	for _, t := range mine {
		fmt.Fprintf(w, "  %d. %s - due: %s\n", t.ID, t.Title, formatTime(t.DueDate))
	}
	fmt.Fprintln(w)

	details, err := api.GetTask(ctx, created.ID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}
	fmt.Fprintf(w, "Task %d details:\n", details.ID)
	if err := printFormatted(c, details); err != nil {
		return err
	}
	fmt.Fprintln(w)

	done, err := api.UpdateTask(ctx, created.ID, map[string]any{"status": "done"})
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	fmt.Fprintf(w, "Task %d marked as %s\n", done.ID, done.Status)

	health, err := api.Health(ctx)
	if err != nil {
		return fmt.Errorf("failed to get health: %w", err)
	}
	fmt.Fprintf(w, "Total tasks in system: %d\n", health.TotalTasks)
	return nil
}

func smokeCommand() *cli.Command {
	return &cli.Command{
		Name:   "smoke",
		Usage:  "Check every endpoint of a running server and report failures",
		Action: smokeAction,
	}
}

type smokeCheck struct {
	name string
	run  func(ctx context.Context) error
}

func smokeAction(ctx context.Context, c *cli.Command) error {
	api := newClient(c)
	w := writer(c)
	var taskID int

	checks := []smokeCheck{
		{"root endpoint", func(ctx context.Context) error {
			_, err := api.Info(ctx)
			return err
		}},
		{"health endpoint", func(ctx context.Context) error {
			h, err := api.Health(ctx)
			if err != nil {
				return err
			}
			if h.Status != "healthy" {
				return fmt.Errorf("status %q", h.Status)
			}
			return nil
		}},
		{"list tasks", func(ctx context.Context) error {
			_, err := api.ListTasks(ctx, nil)
			return err
		}},
		{"create task", func(ctx context.Context) error {
			t, err := api.CreateTask(ctx, map[string]any{
				"title":       "Smoke Test Task",
				"description": "Created by taskctl smoke",
				"assignee":    "smoke@example.com",
				"status":      "todo",
			})
			if err != nil {
				return err
			}
			taskID = t.ID
			return nil
		}},
		{"get task", func(ctx context.Context) error {
			t, err := api.GetTask(ctx, taskID)
			if err != nil {
				return err
			}
			return expect("title", "Smoke Test Task", t.Title)
		}},
		{"update task", func(ctx context.Context) error {
			t, err := api.UpdateTask(ctx, taskID, map[string]any{"status": "in_progress"})
			if err != nil {
				return err
			}
			return expect("status", "in_progress", t.Status)
		}},
		{"filter by status", func(ctx context.Context) error {
			tasks, err := api.ListTasks(ctx, &client.ListTasksRequest{Status: "in_progress"})
			if err != nil {
				return err
			}
			if !containsTask(tasks, taskID) {
				return fmt.Errorf("task %d missing from filtered list", taskID)
			}
			return nil
		}},
		{"delete task", func(ctx context.Context) error {
			_, err := api.DeleteTask(ctx, taskID)
			return err
		}},
		{"deleted task is gone", func(ctx context.Context) error {
			_, err := api.GetTask(ctx, taskID)
			var apiErr *client.APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
				return nil
			}
			if err != nil {
				return err
			}
			return fmt.Errorf("task %d still exists", taskID)
		}},
	}

	for _, check := range checks {
		if err := check.run(ctx); err != nil {
			fmt.Fprintf(w, "FAIL %s: %v\n", check.name, err)
			return fmt.Errorf("smoke check %q failed: %w", check.name, err)
		}
		fmt.Fprintf(w, "ok   %s\n", check.name)
	}
	fmt.Fprintln(w, "All checks passed")
	return nil
}

func expect(field, want, got string) error {
	if want != got {
		return fmt.Errorf("%s: want %q, got %q", field, want, got)
	}
	return nil
}

func containsTask(tasks []dto.TaskResponse, id int) bool {
	for _, t := range tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(time.RFC3339)
}
