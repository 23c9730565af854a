// Package main provides the entry point for betlink-cli.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/yndnr/betlink-go/internal/cli/command"
)

func main() {
	// Credentials are commonly kept in a .env file next to the working
	// directory; absence is not an error.
	_ = godotenv.Load()

	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
