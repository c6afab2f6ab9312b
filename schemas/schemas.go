// Package schemas embeds the JSON Schemas battery files are validated
// against.
package schemas

import _ "embed"

// BatterySchemaJSON is the JSON Schema for battery YAML files.
//
//go:embed battery.schema.json
var BatterySchemaJSON string
