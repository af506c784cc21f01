// Package main provides the entry point for the carousel pipeline worker.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "carousel_worker",
	Short: "Carousel generation pipeline worker",
	Long:  "Carousel Studio worker consumes pipeline jobs from the queue and drives the five-stage carousel generation pipeline: layout, backgrounds, previews, validation and on-demand hi-res exports.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
