// Package migrations embeds the goose SQL migrations for the core schema.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed core/*.sql
var embedded embed.FS

// Core returns the core schema migrations rooted at the migration files.
func Core() fs.FS {
	sub, err := fs.Sub(embedded, "core")
	if err != nil {
		panic(err)
	}
	return sub
}
