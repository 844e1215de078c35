// Package migrations embeds the versioned PostgreSQL schema applied by golang-migrate.
package migrations

import "embed"

// FS holds the *.up.sql and *.down.sql files of this directory
//
//go:embed *.sql
var FS embed.FS
