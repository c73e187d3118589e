package main

import (
	"context"
	"fmt"
	"os"
	"taskServer/cmd/taskctl/commands"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	app := commands.NewApp(os.Stdout)
	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "taskctl: %v\n", err)
		os.Exit(1)
	}
}
