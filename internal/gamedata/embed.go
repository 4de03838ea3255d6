// Package gamedata provides the bundled palette definitions and the helpers
// that turn them into region palettes.
package gamedata

import "embed"

// dataFS holds palettes.json, compiled into the binary.
//
//go:embed *.json
var dataFS embed.FS
