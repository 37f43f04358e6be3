package main

import (
	"os"

	"github.com/joho/godotenv"

	"quizmaster/internal/cli"
)

func main() {
	// Optional .env for local development; real deployments set env vars directly.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
