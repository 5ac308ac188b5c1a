package main

import (
	"os"

	"github.com/cleared-dev/andromoze/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(commands.ExitCode(err))
	}
}
