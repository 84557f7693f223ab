package main

import (
	"io/fs"
	"os"

	"freader/db"
)

// sourceDir is the on-disk directory used by "create".
const sourceDir = "db/migrations"

// migrationsDir returns MIGRATIONS_DIR, or "" to use the embedded files.
func migrationsDir() string {
	return os.Getenv("MIGRATIONS_DIR")
}

// migrationSource picks the filesystem goose reads from and the directory
// inside it. An explicit dir wins over the embedded migrations.
func migrationSource(dir string) (fs.FS, string) {
	if dir != "" {
		return nil, dir
	}
	return db.Migrations, db.MigrationsDir
}
