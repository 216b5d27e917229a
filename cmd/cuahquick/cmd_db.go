package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ucqdev/cuahquick/config"
	"github.com/ucqdev/cuahquick/database/seeders"
	"github.com/ucqdev/cuahquick/pkg/database"
	"github.com/ucqdev/cuahquick/pkg/migration"
)

// bootDB loads config and opens the database connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect()
}

// cuahquick migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Running migrations…")
		return migration.New(database.DB).Run()
	},
}

// cuahquick migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Rolling back last batch…")
		return migration.New(database.DB).Rollback()
	},
}

// cuahquick migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		return migration.New(database.DB).Status()
	},
}

// cuahquick seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all registered database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Seeding…")
		if err := seeders.RunAll(database.DB); err != nil {
			return err
		}
		fmt.Println("Done.")
		return nil
	},
}
