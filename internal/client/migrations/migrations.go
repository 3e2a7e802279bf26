// Package migrations embeds the client cache schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
