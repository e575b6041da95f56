package main

import (
	"os"

	"github.com/swissfort-mfg/entrydesk/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
