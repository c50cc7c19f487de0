// Package schemas holds the JSON Schemas for the artifacts the harness writes.
package schemas

import _ "embed"

// PipelineReport is the schema of the report written at the end of a successful run.
//
//go:embed pipeline_report.schema.json
var PipelineReport string
