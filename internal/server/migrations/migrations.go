// Package migrations embeds the goose SQL migrations for the database
// storage backends.
package migrations

import "embed"

// Migrations holds the PostgreSQL migrations at the root of the FS.
//
//go:embed *.sql
var Migrations embed.FS

// SQLite holds the SQLite migrations under SQLiteDir.
//
//go:embed sqlite/*.sql
var SQLite embed.FS

const SQLiteDir = "sqlite"
