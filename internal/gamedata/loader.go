package gamedata

import (
	"encoding/json"
	"fmt"
	"io/fs"
)

// Decode reads a JSON file from fsys into a T.
func Decode[T any](fsys fs.FS, name string) (T, error) {
	var result T

	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return result, fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("parse %s: %w", name, err)
	}

	return result, nil
}

// Load decodes a file bundled with the binary.
func Load[T any](name string) (T, error) {
	return Decode[T](dataFS, name)
}

// MustLoad decodes a bundled file, panicking on error. Bundled files are
// part of the build, so a failure here is a programming error.
func MustLoad[T any](name string) T {
	result, err := Load[T](name)
	if err != nil {
		panic(err)
	}
	return result
}
