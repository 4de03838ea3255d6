// Package data bundles the default configuration into the binary.
package data

import _ "embed"

//go:embed defaults.yaml
var defaults []byte

// Defaults returns the bundled defaults.yaml.
func Defaults() []byte {
	return defaults
}
