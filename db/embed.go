// Package db embeds the postgres schema migrations for cmsctl.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
