package main

import (
	"os"

	"github.com/claudewatch/claudewatch/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
