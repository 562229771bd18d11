package results

// TrialRecord is one evaluation outcome read from a single result file.
// DepthPercent, ContextLength and Score are required for aggregation; they are
// decoded through pointers so that an absent or null field is distinguishable
// from a legitimate zero (a needle at depth 0% is a valid trial).
// The remaining fields are metadata carried along for reporting.
type TrialRecord struct {
	Model               string   `json:"model,omitempty"`
	ContextLength       *int     `json:"context_length"`
	DepthPercent        *float64 `json:"depth_percent"`
	Version             int      `json:"version,omitempty"`
	Needle              string   `json:"needle,omitempty"`
	ModelResponse       string   `json:"model_response,omitempty"`
	Score               *float64 `json:"score"`
	TestDurationSeconds float64  `json:"test_duration_seconds,omitempty"`
	TestTimestampUTC    string   `json:"test_timestamp_utc,omitempty"`
}

// Complete reports whether the record carries all three fields the aggregator
// needs. Incomplete records are skipped, never defaulted.
func (r *TrialRecord) Complete() bool {
	return r.DepthPercent != nil && r.ContextLength != nil && r.Score != nil
}

// LoadReport is the outcome of scanning a results directory.
// Warnings collects per-file problems that did not stop the run.
type LoadReport struct {
	Records  []TrialRecord
	Files    int // *.json files considered
	Skipped  int // files dropped for decode failures or missing fields
	Warnings []string
}
