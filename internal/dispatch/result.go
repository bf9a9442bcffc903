package dispatch

// Failure records why one clip in a batch did not take an edit.
type Failure struct {
	ClipID string `json:"clip_id"`
	Reason string `json:"reason"`
}

// Result is the per-clip outcome of one dispatched action. A non-zero Failed
// count is the normal partial-failure outcome, not an error: callers branch on
// the counts and report them distinctly ("applied to 3 of 4 clips").
type Result struct {
	Tag        Tag       `json:"action"`
	Successful int       `json:"successful"`
	Failed     int       `json:"failed"`
	Failures   []Failure `json:"failures,omitempty"`
}

// PartialFailure reports whether some but not all targets took the edit.
func (r Result) PartialFailure() bool {
	return r.Failed > 0 && r.Successful > 0
}

// BatchResult aggregates the results of a dispatched action list.
type BatchResult struct {
	Results    []Result `json:"results"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
}
