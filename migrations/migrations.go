// Package migrations embeds the SQL schema so the CLI and tests run
// against the same database layout.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
