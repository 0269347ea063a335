package migrations

import "embed"

// FS contains embedded SQLite migrations for table storage.
//
//go:embed *.sql
var FS embed.FS
