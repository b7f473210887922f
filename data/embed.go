package data

import (
	"embed"
)

// Seed holds the default collections written on first read.
//
//go:embed seed/*.json
var Seed embed.FS
