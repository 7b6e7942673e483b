package report

// Schema is the JSON Schema (Draft 2020-12) for the assay JSON output.
// It documents the structure returned by WriteJSON.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/unbound-force/assay/check-report.schema.json",
  "title": "assay Check Report",
  "description": "Output schema for assay check --format=json",
  "type": "object",
  "required": ["version", "findings", "summary", "metadata"],
  "properties": {
    "version": {
      "type": "string",
      "description": "Schema version (semver)"
    },
    "findings": {
      "type": "array",
      "items": { "$ref": "#/$defs/Finding" }
    },
    "summary": { "$ref": "#/$defs/Summary" },
    "metadata": { "$ref": "#/$defs/Metadata" }
  },
  "$defs": {
    "Rule": {
      "type": "string",
      "description": "Rule ID (see assay rules)",
      "enum": [
        "case-arg-type", "case-arg-count",
        "case-returns-type", "case-returns-void",
        "values-arg-type", "values-count",
        "same-on-value",
        "collection-arg", "collection-elem-mismatch", "collection-item-mismatch"
      ]
    },
    "Severity": {
      "type": "string",
      "enum": ["error", "warning"]
    },
    "Location": {
      "type": "object",
      "required": ["file", "line", "column"],
      "properties": {
        "file": { "type": "string" },
        "line": { "type": "integer", "minimum": 1 },
        "column": { "type": "integer", "minimum": 1 }
      }
    },
    "Edit": {
      "type": "object",
      "required": ["file", "offset", "end", "new_text"],
      "properties": {
        "file": { "type": "string" },
        "offset": {
          "type": "integer",
          "minimum": 0,
          "description": "Byte offset of the first replaced byte"
        },
        "end": {
          "type": "integer",
          "minimum": 0,
          "description": "Byte offset just past the last replaced byte"
        },
        "new_text": { "type": "string" }
      }
    },
    "Fix": {
      "type": "object",
      "required": ["message", "edits"],
      "properties": {
        "message": { "type": "string" },
        "edits": {
          "type": "array",
          "items": { "$ref": "#/$defs/Edit" }
        }
      }
    },
    "Finding": {
      "type": "object",
      "required": ["id", "rule", "severity", "analyzer", "package", "location", "message"],
      "properties": {
        "id": {
          "type": "string",
          "pattern": "^as-[0-9a-f]{8}$",
          "description": "Stable identifier (as-XXXXXXXX)"
        },
        "rule": { "$ref": "#/$defs/Rule" },
        "severity": { "$ref": "#/$defs/Severity" },
        "analyzer": { "type": "string" },
        "package": {
          "type": "string",
          "description": "Full import path"
        },
        "location": { "$ref": "#/$defs/Location" },
        "message": {
          "type": "string",
          "description": "Human-readable explanation"
        },
        "fix": { "$ref": "#/$defs/Fix" }
      }
    },
    "Summary": {
      "type": "object",
      "required": ["total", "fixable", "by_rule", "by_severity"],
      "properties": {
        "total": { "type": "integer", "minimum": 0 },
        "fixable": { "type": "integer", "minimum": 0 },
        "by_rule": {
          "type": "object",
          "propertyNames": { "$ref": "#/$defs/Rule" },
          "additionalProperties": { "type": "integer" }
        },
        "by_severity": {
          "type": "object",
          "propertyNames": { "$ref": "#/$defs/Severity" },
          "additionalProperties": { "type": "integer" }
        }
      }
    },
    "Metadata": {
      "type": "object",
      "required": ["assay_version", "go_version", "packages", "duration_ms"],
      "properties": {
        "assay_version": { "type": "string" },
        "go_version": { "type": "string" },
        "packages": { "type": "integer", "minimum": 0 },
        "duration_ms": {
          "type": "integer",
          "description": "Analysis duration in milliseconds"
        },
        "timestamp": {
          "type": "string",
          "format": "date-time"
        },
        "warnings": {
          "type": "array",
          "items": { "type": "string" }
        }
      }
    }
  }
}`
