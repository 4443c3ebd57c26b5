// Package migrations embeds the goose SQL migrations applied by the
// repository manager at startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
