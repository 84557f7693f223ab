// Package db holds the SQL schema migrations applied by cmd/migrate.
package db

import "embed"

// Migrations contains the goose SQL files under migrations/.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations that goose reads from.
const MigrationsDir = "migrations"
