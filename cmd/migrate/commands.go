package main

import (
	"database/sql"
	"fmt"
	"os"

	"syncup/migrations"
	"syncup/pkg/config"
	"syncup/pkg/database"

	"github.com/fatih/color"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed, color.Bold)

	createDir string
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the SyncUp database schema",
	Long: `migrate applies, rolls back and inspects the goose migrations embedded
in this binary against the database configured through DB_* variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *sql.DB) error {
			if err := goose.Up(db, "."); err != nil {
				return fail("Failed to run migrations", err)
			}
			green.Println("✓ Migrations applied successfully")
			return nil
		})
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *sql.DB) error {
			if err := goose.Down(db, "."); err != nil {
				return fail("Failed to roll back migration", err)
			}
			green.Println("✓ Migration rolled back successfully")
			return nil
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the status of every migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *sql.DB) error {
			if err := goose.Status(db, "."); err != nil {
				return fail("Failed to get migration status", err)
			}
			return nil
		})
	},
}

var createCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a new SQL migration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// New files go to disk, not into the embedded FS.
		goose.SetBaseFS(nil)
		if err := goose.Create(nil, createDir, args[0], "sql"); err != nil {
			return fail("Failed to create migration", err)
		}
		green.Printf("✓ Created migration %s in %s\n", args[0], createDir)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createDir, "dir", "migrations", "directory to write the new migration into")
	rootCmd.AddCommand(upCmd, downCmd, statusCmd, createCmd)
}

func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

func withDB(fn func(db *sql.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fail("Failed to load config", err)
	}

	db, err := sql.Open("postgres", database.DSN(cfg))
	if err != nil {
		return fail("Failed to open database", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fail("Failed to set dialect", err)
	}

	return fn(db)
}

func fail(title string, err error) error {
	red.Fprintf(os.Stderr, "%s\n", title)
	fmt.Fprintf(os.Stderr, "%v\n", err)
	return fmt.Errorf("%s: %w", title, err)
}
