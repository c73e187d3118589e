package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"taskServer/internal/app"
	"taskServer/internal/config"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := newCommand(run).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "task-server: %v\n", err)
		os.Exit(1)
	}
}

func newCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:  "task-server",
		Usage: "Run the in-memory task server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file (default: ./config.yml when present)",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind the server (default: 127.0.0.1)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to bind the server (default: 8000)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
			},
			&cli.BoolFlag{
				Name:  "dev",
				Usage: "Human-readable development logging",
			},
			&cli.BoolFlag{
				Name:  "no-seed",
				Usage: "Start with an empty task list",
			},
		},
		Action: action,
	}
}

func run(ctx context.Context, c *cli.Command) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg).Init(ctx)
	if err != nil {
		return err
	}
	return a.Run(ctx)
}

// loadConfig reads the config file and env, then applies flags on top.
func loadConfig(c *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("host") {
		cfg.Server.Host = c.String("host")
	}
	if c.IsSet("port") {
		cfg.Server.Port = int(c.Int("port"))
	}
	if c.IsSet("log-level") {
		cfg.Logging.Level = c.String("log-level")
	}
	if c.IsSet("dev") {
		cfg.Logging.Development = c.Bool("dev")
	}
	if c.Bool("no-seed") {
		cfg.Seed = false
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
