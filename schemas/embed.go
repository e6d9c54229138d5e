// Package schemas embeds the JSON Schema documents describing the CLI and API outputs.
package schemas

import "embed"

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
