package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/bankbook-dev/bankbook/internal/commands"
)

func main() {
	// Notification credentials live in .env, never in bankbook.yaml.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
