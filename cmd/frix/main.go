package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/kamilvitek/frix/internal/cmd"
)

func main() {
	// Load .env files if present (for local development)
	// Load() won't overwrite existing vars; Overload ensures local values take precedence
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
