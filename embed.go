// Package stays embeds assets shipped inside the binary.
package stays

import "embed"

// Migrations holds the goose SQL migrations applied by the migrate command
// and the storage test helpers.
//
//go:embed migrations/*.sql
var Migrations embed.FS
