package db

import "embed"

//go:embed seed/*.json
var SeedFiles embed.FS
