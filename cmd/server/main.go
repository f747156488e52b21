package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobboard",
	Short: "Job board API server",
	Long:  "Job board HTTP API with an admin dashboard: serve the API, apply migrations, or seed the database.",
	RunE:  runServe,
}

func main() {
	_ = godotenv.Load()

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
