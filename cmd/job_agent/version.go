package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Print the agent version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Printf("job_agent %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCommand)
}
