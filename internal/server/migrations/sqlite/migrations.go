// Package sqlite embeds the goose migrations for the sqlite backend.
package sqlite

import "embed"

//go:embed *.sql
var Migrations embed.FS
