package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"freader/internal/platform/config"
	"freader/internal/platform/postgres"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

type options struct {
	dsn string
	dir string
}

func main() {
	config.LoadEnvFiles()
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Apply freader database migrations",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.dsn, "dsn", envOr("DB_DSN", config.DefaultDatabaseDSN), "PostgreSQL connection string")
	root.PersistentFlags().StringVar(&opts.dir, "dir", migrationsDir(), "migrations directory (embedded files when empty)")

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withDB(cmd.Context(), opts, func(ctx context.Context, db *sql.DB, dir string) error {
					if err := goose.UpContext(ctx, db, dir); err != nil {
						return fmt.Errorf("apply migrations: %w", err)
					}
					cmd.Println("Migrations applied successfully")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withDB(cmd.Context(), opts, func(ctx context.Context, db *sql.DB, dir string) error {
					if err := goose.DownContext(ctx, db, dir); err != nil {
						return fmt.Errorf("roll back migration: %w", err)
					}
					cmd.Println("Migration rolled back successfully")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print the applied state of every migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withDB(cmd.Context(), opts, func(ctx context.Context, db *sql.DB, dir string) error {
					return goose.StatusContext(ctx, db, dir)
				})
			},
		},
		&cobra.Command{
			Use:   "create <name>",
			Short: "Create a new SQL migration file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				dir := opts.dir
				if dir == "" {
					dir = sourceDir
				}
				if err := goose.Create(nil, dir, args[0], "sql"); err != nil {
					return fmt.Errorf("create migration: %w", err)
				}
				return nil
			},
		},
	)
	return root
}

func withDB(ctx context.Context, opts *options, fn func(ctx context.Context, db *sql.DB, dir string) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	pool, err := postgres.Open(ctx, opts.dsn)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", config.RedactDSN(opts.dsn), err)
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	fsys, dir := migrationSource(opts.dir)
	goose.SetBaseFS(fsys)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return fn(ctx, db, dir)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
