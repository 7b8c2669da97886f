// Package reconcile orchestrates one full reconciliation: normalize
// identities, match columns to candidates, redistribute each matched
// column to its authoritative total, and report what happened. It holds
// no state between calls; a single Reconciler may be used concurrently
// across tables.
package reconcile

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/recount/pkg/logging"
	"github.com/agentstation/recount/pkg/match"
	"github.com/agentstation/recount/pkg/redistribute"
	"github.com/agentstation/recount/pkg/similarity"
	"github.com/agentstation/recount/pkg/tally"
)

// Reconciler reconciles extracted tables against authoritative slates.
type Reconciler interface {
	// Table reconciles one table against one slate. Expected
	// reconciliation conditions (unmatched columns, unmatched
	// candidates, too few matches) are Result fields, never errors;
	// the error return fires only on contract violations such as a
	// negative authoritative total.
	Table(ctx context.Context, table *tally.Table, slate tally.Slate) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	scorer        *similarity.Scorer
	matchConfig   match.Config
	minMatches    int
	maxAdjustment float64
}

// New creates a Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{
		scorer:        options.scorer,
		matchConfig:   options.matchConfig,
		minMatches:    options.minMatches,
		maxAdjustment: options.maxAdjustment,
	}, nil
}

// Table runs one reconciliation.
func (r *reconciler) Table(ctx context.Context, table *tally.Table, slate tally.Slate) (*Result, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	if err := slate.Validate(); err != nil {
		return nil, err
	}

	result := newResult()
	result.Metadata.RunID = uuid.NewString()
	result.Metadata.StartTime = start

	// Degenerate inputs return an empty result, never an error: there
	// is nothing to reconcile, and whether that matters is a caller
	// decision, not a failure.
	if table.Len() == 0 || table.Columns() == 0 || len(slate) == 0 {
		result.Corrected = table.Copy()
		if result.Corrected == nil {
			result.Corrected = tally.MustTable(nil)
		}
		result.Sufficient = r.minMatches <= 0
		return r.finalize(result, table, slate, start), nil
	}

	// Match columns to candidates.
	columns := match.ColumnsOf(table)
	assignment := match.Columns(columns, slate, r.scorer, r.matchConfig)
	logger.Debug().
		Int("columns", len(columns)).
		Int("candidates", len(slate)).
		Int("assigned", assignment.Len()).
		Msg("matched columns to candidates")

	// Redistribute each assigned column; unassigned columns pass
	// through untouched in the copy.
	corrected := table.Copy()
	touched := make(map[int]int, assignment.Len())
	for _, pair := range assignment.Pairs() {
		values, rows := redistribute.Column(table.Column(pair.Column), slate[pair.Candidate].Total)
		if err := corrected.SetColumn(pair.Column, values); err != nil {
			return nil, err
		}
		touched[pair.Candidate] = rows
	}
	result.Corrected = corrected

	// Per-candidate reports, in slate order.
	for si, candidate := range slate {
		report := CandidateReport{Candidate: candidate, Column: -1}
		if column, ok := assignment.Column(si); ok {
			_, method, _ := assignment.Candidate(column)
			report.Matched = true
			report.Method = method
			report.Column = column
			report.RawSum = table.ColumnSum(column)
			report.CorrectedSum = corrected.ColumnSum(column)
			report.RowsTouched = touched[si]
			report.PercentError = percentError(report.RawSum, candidate.Total)
			report.Suspect = r.suspect(report.RawSum, candidate.Total)
		} else {
			// The candidate's total is entirely missing from the
			// corrected table; report the full miss.
			report.PercentError = percentError(0, candidate.Total)
		}
		result.Candidates = append(result.Candidates, report)
	}

	// Columns no candidate claimed keep their raw values and are
	// flagged for the caller.
	for ci := range columns {
		if _, _, ok := assignment.Candidate(ci); !ok {
			result.UnmatchedColumns = append(result.UnmatchedColumns, ci)
		}
	}

	result.Sufficient = assignment.Len() >= r.minMatches
	if !result.Sufficient {
		logger.Debug().
			Int("assigned", assignment.Len()).
			Int("min_matches", r.minMatches).
			Msg("assignment below caller minimum")
	}

	return r.finalize(result, table, slate, start), nil
}

// finalize fills result metadata and statistics.
func (r *reconciler) finalize(result *Result, table *tally.Table, slate tally.Slate, start time.Time) *Result {
	result.Metadata.Duration = time.Since(start)
	result.Metadata.Stats = ResultStatistics{
		Rows:                table.Len(),
		Columns:             table.Columns(),
		Candidates:          len(slate),
		Assigned:            result.MatchedCount(),
		UnmatchedColumns:    len(result.UnmatchedColumns),
		UnmatchedCandidates: len(slate) - result.MatchedCount(),
	}
	for _, report := range result.Candidates {
		result.Metadata.Stats.RowsTouched += report.RowsTouched
	}
	return result
}

// suspect flags corrections larger than the caller's plausibility
// fraction. The correction is still applied in full; this only marks
// the report so the caller can hold the table for review.
func (r *reconciler) suspect(rawSum, total int64) bool {
	if r.maxAdjustment <= 0 || total <= 0 {
		return false
	}
	drift := rawSum - total
	if drift < 0 {
		drift = -drift
	}
	return float64(drift)/float64(total) > r.maxAdjustment
}

// percentError is |rawSum - total| / total * 100, computed on the raw
// sums to document how much correction was needed. A zero total has no
// defined ratio: a zero raw sum is a perfect match, anything else a
// full miss.
func percentError(rawSum, total int64) float64 {
	if total == 0 {
		if rawSum == 0 {
			return 0
		}
		return 100
	}
	drift := rawSum - total
	if drift < 0 {
		drift = -drift
	}
	return float64(drift) / float64(total) * 100
}
