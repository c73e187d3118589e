package commands

import (
	"context"
	"fmt"
	"taskServer/internal/client"

	"github.com/urfave/cli/v3"
)

func healthCommand() *cli.Command {
	return &cli.Command{
		Name:   "health",
		Usage:  "Show server health and task count",
		Action: healthAction,
	}
}

func healthAction(ctx context.Context, c *cli.Command) error {
	health, err := newClient(c).Health(ctx)
	if err != nil {
		return fmt.Errorf("failed to get health: %w", err)
	}
	return printFormatted(c, health)
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List tasks, optionally filtered",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "assignee",
				Usage: "Filter by assignee (case-insensitive substring)",
			},
			&cli.StringFlag{
				Name:  "status",
				Usage: "Filter by status: todo, in_progress, done, cancelled",
			},
			&cli.StringFlag{
				Name:  "title",
				Usage: "Filter by title substring (case-insensitive)",
			},
		},
		Action: listAction,
	}
}

func listAction(ctx context.Context, c *cli.Command) error {
	filters := &client.ListTasksRequest{
		Assignee:      c.String("assignee"),
		Status:        c.String("status"),
		TitleContains: c.String("title"),
	}

	tasks, err := newClient(c).ListTasks(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}
	return printFormatted(c, tasks)
}
