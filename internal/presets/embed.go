// Package presets provides the embedded generation presets and utilities for loading them.
package presets

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
