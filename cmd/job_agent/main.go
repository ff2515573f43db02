// Package main provides the entry point for the job aggregation agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "job_agent",
	Short: "Job posting aggregation and scoring agent",
	Long:  "Job agent reads a JSON search request on stdin, fans out to job board APIs concurrently, scores each posting against the candidate resume, and writes a ranked JSON response on stdout. Progress lines are emitted on stderr.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
