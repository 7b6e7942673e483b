// Package report provides output formatters for assay findings in
// JSON and human-readable text formats.
package report

import (
	"encoding/json"
	"io"

	"github.com/unbound-force/assay/internal/taxonomy"
)

// SchemaVersion is the version of the JSON output described by Schema.
const SchemaVersion = "1.0.0"

// JSONReport is the top-level JSON output structure.
type JSONReport struct {
	Version string `json:"version"`
	taxonomy.Report
}

// WriteJSON writes the report as formatted JSON to the writer.
func WriteJSON(w io.Writer, rpt taxonomy.Report) error {
	if rpt.Findings == nil {
		rpt = taxonomy.NewReport(nil, rpt.Metadata)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(JSONReport{
		Version: SchemaVersion,
		Report:  rpt,
	})
}
