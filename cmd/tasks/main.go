package main

import (
	"os"

	"github.com/fastygo/tasklist/cmd/tasks/commands"
)

func main() {
	if err := commands.NewRootCommand(commands.OpenFromEnv).Execute(); err != nil {
		os.Exit(1)
	}
}
