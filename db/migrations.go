// Package db embeds the Postgres schema of the orphaned-order ledger.
package db

import "embed"

//go:embed migrations/*.up.sql
var Migrations embed.FS
