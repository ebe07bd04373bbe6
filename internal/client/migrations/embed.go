// Package migrations embeds the local database schema for goose.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
