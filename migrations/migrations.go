// migrations/migrations.go

// Package migrations embeds the schema migration files so the binaries can
// apply them without a filesystem checkout.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
