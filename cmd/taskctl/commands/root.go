package commands

import (
	"fmt"
	"io"
	"os"
	"taskServer/cmd/taskctl/output"
	"taskServer/internal/client"

	"github.com/urfave/cli/v3"
)

const defaultServer = "http://127.0.0.1:8000"

// NewApp creates the root CLI application. Command output goes to w.
func NewApp(w io.Writer) *cli.Command {
	if w == nil {
		w = os.Stdout
	}
	return &cli.Command{
		Name:   "taskctl",
		Usage:  "Task server CLI - inspect and exercise a running task server",
		Writer: w,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Usage:   "Task server URL",
				Value:   defaultServer,
				Sources: cli.EnvVars("TASKCTL_SERVER"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output format: json or yaml",
				Value:   "json",
			},
		},
		Commands: []*cli.Command{
			healthCommand(),
			listCommand(),
			demoCommand(),
			smokeCommand(),
		},
	}
}

func newClient(c *cli.Command) *client.HTTPClient {
	return client.NewHTTPClient(c.String("server"))
}

func writer(c *cli.Command) io.Writer {
	return c.Root().Writer
}

func printFormatted(c *cli.Command, data any) error {
	formatter, err := output.New(c.String("output"))
	if err != nil {
		return err
	}
	out, err := formatter.Format(data)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	_, err = fmt.Fprintln(writer(c), out)
	return err
}
