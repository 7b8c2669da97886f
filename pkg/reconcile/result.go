package reconcile

import (
	"fmt"
	"time"

	"github.com/agentstation/recount/pkg/match"
	"github.com/agentstation/recount/pkg/tally"
)

// Result represents the outcome of one reconciliation run. It is
// complete and internally consistent even when matching fell short:
// every assigned column in Corrected sums exactly to its candidate's
// total, and everything else passed through untouched.
type Result struct {
	// Corrected is the output table: same shape as the input, assigned
	// columns redistributed, unassigned columns unchanged.
	Corrected *tally.Table

	// Candidates holds one report per slate candidate, in slate order.
	Candidates []CandidateReport

	// UnmatchedColumns lists column indices no candidate claimed.
	UnmatchedColumns []int

	// Sufficient reports whether the assignment met the caller's
	// configured minimum match count.
	Sufficient bool

	// Metadata about the run.
	Metadata ResultMetadata
}

// CandidateReport records how one candidate fared.
type CandidateReport struct {
	Candidate tally.Candidate `json:"candidate"`

	// Matched reports whether any column was assigned to the
	// candidate. When false, Column is -1 and the candidate's total is
	// entirely missing from the corrected table.
	Matched bool `json:"matched"`

	// Method is the matching pass that produced the assignment.
	Method match.Method `json:"method,omitempty"`

	// Column is the assigned column index, or -1.
	Column int `json:"column"`

	// RawSum is the column sum before correction.
	RawSum int64 `json:"raw_sum"`

	// CorrectedSum is the column sum after correction. Equal to the
	// candidate's authoritative total for every matched candidate.
	CorrectedSum int64 `json:"corrected_sum"`

	// PercentError is |RawSum - Total| / Total * 100, measured before
	// correction.
	PercentError float64 `json:"percent_error"`

	// RowsTouched is how many row values the redistribution changed.
	RowsTouched int `json:"rows_touched"`

	// Suspect is set when the correction exceeded the caller's
	// plausibility fraction (WithMaxAdjustment).
	Suspect bool `json:"suspect,omitempty"`
}

// ResultMetadata contains metadata about the reconciliation run.
type ResultMetadata struct {
	// RunID uniquely identifies this run in logs and downstream
	// stores.
	RunID string

	// StartTime when reconciliation started.
	StartTime time.Time

	// Duration of the run.
	Duration time.Duration

	// Stats about the run.
	Stats ResultStatistics
}

// ResultStatistics contains counts describing the reconciliation.
type ResultStatistics struct {
	Rows                int `json:"rows"`
	Columns             int `json:"columns"`
	Candidates          int `json:"candidates"`
	Assigned            int `json:"assigned"`
	UnmatchedColumns    int `json:"unmatched_columns"`
	UnmatchedCandidates int `json:"unmatched_candidates"`
	RowsTouched         int `json:"rows_touched"`
}

func newResult() *Result {
	return &Result{}
}

// MatchedCount returns the number of matched candidates.
func (r *Result) MatchedCount() int {
	count := 0
	for _, c := range r.Candidates {
		if c.Matched {
			count++
		}
	}
	return count
}

// Report returns the report for a candidate by slate index.
func (r *Result) Report(candidate int) (CandidateReport, bool) {
	if candidate < 0 || candidate >= len(r.Candidates) {
		return CandidateReport{}, false
	}
	return r.Candidates[candidate], true
}

// Summary returns a human-readable one-line summary of the run.
func (r *Result) Summary() string {
	if len(r.Candidates) == 0 {
		return "Nothing to reconcile."
	}
	summary := fmt.Sprintf("Matched %d of %d candidates across %d columns",
		r.MatchedCount(), len(r.Candidates), r.Metadata.Stats.Columns)
	if len(r.UnmatchedColumns) > 0 {
		summary += fmt.Sprintf("; %d columns unmatched", len(r.UnmatchedColumns))
	}
	if !r.Sufficient {
		summary += " (below configured minimum)"
	}
	return summary + "."
}
