// Package migration embeds the database schema migrations.
package migration

import "embed"

// FS holds the golang-migrate up and down files.
//
//go:embed *.sql
var FS embed.FS

// Dir is the directory of FS containing the migrations.
const Dir = "."
