package delimited

import "github.com/finbooks/statement-ingest/internal/format"

// PreviewResult is the headers-only fast path for UIs that need to show
// the shape of an export before committing to a mapping choice.
type PreviewResult struct {
	Headers     []string   `json:"headers"`
	Rows        [][]string `json:"rows"`
	TotalRows   int        `json:"total_rows"`
	ProfileKey  string     `json:"profile_key,omitempty"`
	ProfileName string     `json:"profile_name,omitempty"`
	Detected    bool       `json:"detected"`
}

// Preview returns the header row, up to limit sample rows, and the result
// of auto-detection without normalizing anything.
func Preview(headers []string, rows [][]string, limit int) *PreviewResult {
	if limit <= 0 || limit > len(rows) {
		limit = len(rows)
	}
	result := &PreviewResult{
		Headers:   headers,
		Rows:      rows[:limit],
		TotalRows: len(rows),
	}
	if p, ok := format.Detect(headers); ok {
		result.ProfileKey = p.Key
		result.ProfileName = p.DisplayName
		result.Detected = true
	}
	return result
}
