package main

import (
	"os"

	"github.com/aims-dev/sectorburst/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
