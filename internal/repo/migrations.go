package repo

import "embed"

// Migrations holds the goose SQL files for the postgres store.
//
//go:embed migrations/*.sql
var Migrations embed.FS
