package main

import (
	"os"

	"github.com/giza-dash/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}