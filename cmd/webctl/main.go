package main

import (
	"os"

	"github.com/cyberb/web/internal/command"
)

func main() {
	rootCmd := command.New()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
