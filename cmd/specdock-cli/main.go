package main

import (
	"os"

	"github.com/specdock/specdock/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
