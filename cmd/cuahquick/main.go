// Command cuahquick is the management CLI: it serves the API, runs
// migrations and seeders, lists routes, and starts standalone workers.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import migrations so their init() funcs run and register themselves.
	_ "github.com/ucqdev/cuahquick/database/migrations"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cuahquick",
	Short: "Cuah-Quick — campus food ordering backend",
	Long:  "Cuah-Quick takes food orders from students and routes them to the campus cafeteria.",
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	// Workers
	rootCmd.AddCommand(queueWorkCmd)
	rootCmd.AddCommand(scheduleRunCmd)
}
