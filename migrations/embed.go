// Package migrations embeds the goose SQL migrations of every SQL backend
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Postgres returns the migrations for the postgres backend
func Postgres() fs.FS {
	sub, _ := fs.Sub(files, "postgres")
	return sub
}

// SQLite returns the migrations for the sqlite backend
func SQLite() fs.FS {
	sub, _ := fs.Sub(files, "sqlite")
	return sub
}
