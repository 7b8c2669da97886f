// Package match assigns extracted table columns to authoritative
// candidates. The algorithm is a deterministic multi-pass greedy
// assignment, not optimal bipartite matching: each pass is strictly
// more permissive than the one before, every assignment records the
// pass that produced it, and ties always break toward the earliest
// column and then the earliest candidate. Predictable and explainable
// beats optimal here; an auditor has to be able to say why a column
// was assigned.
package match

import (
	"math"

	"github.com/agentstation/recount/pkg/similarity"
	"github.com/agentstation/recount/pkg/tally"
)

// Method identifies which pass produced an assignment.
type Method string

const (
	// MethodNone marks an unassigned column or candidate.
	MethodNone Method = ""
	// MethodStrictIdentity is pass 1: high-threshold name match plus
	// party match.
	MethodStrictIdentity Method = "strict-identity"
	// MethodNameOnly is pass 2: relaxed name match, party ignored.
	MethodNameOnly Method = "name-only"
	// MethodPartyNumeric is pass 3: party match plus numeric closeness
	// of the column sum to the authoritative total.
	MethodPartyNumeric Method = "party-numeric"
	// MethodOrdinal is pass 4: declared ballot position matched to
	// column index.
	MethodOrdinal Method = "ordinal"
)

// String returns the string representation of a method.
func (m Method) String() string {
	if m == MethodNone {
		return "unmatched"
	}
	return string(m)
}

// Config holds every matching threshold. All literals that were
// scattered across the original per-constituency scripts live here,
// and only here.
type Config struct {
	// StrictNameThreshold is the edit-ratio floor for pass 1.
	StrictNameThreshold float64 `yaml:"strict_name_threshold" json:"strict_name_threshold"`

	// RelaxedNameThreshold is the edit-ratio floor for pass 2.
	RelaxedNameThreshold float64 `yaml:"relaxed_name_threshold" json:"relaxed_name_threshold"`

	// ClosenessBand is the acceptable sum/total ratio interval for
	// pass 3.
	ClosenessBand similarity.Band `yaml:"closeness_band" json:"closeness_band"`

	// OrdinalFallback enables pass 4.
	OrdinalFallback bool `yaml:"ordinal_fallback" json:"ordinal_fallback"`
}

// DefaultConfig returns the thresholds the engine ships with.
func DefaultConfig() Config {
	return Config{
		StrictNameThreshold:  0.85,
		RelaxedNameThreshold: 0.6,
		ClosenessBand:        similarity.Band{Low: 0.7, High: 1.3},
		OrdinalFallback:      true,
	}
}

// Column is the matcher's view of one extracted column: its optional
// text-derived identity and its sum across all rows.
type Column struct {
	Label string
	Party string
	Sum   int64
}

// ColumnsOf builds the matcher input from a table.
func ColumnsOf(t *tally.Table) []Column {
	sums := t.ColumnSums()
	cols := make([]Column, len(sums))
	for i := range cols {
		h := t.Header(i)
		cols[i] = Column{Label: h.Label, Party: h.Party, Sum: sums[i]}
	}
	return cols
}

// Pair is one column↔candidate assignment and the pass that made it.
type Pair struct {
	Column    int
	Candidate int
	Method    Method
}

// Assignment is a partial one-to-one mapping from columns to
// candidates. Immutable once the matcher returns it.
type Assignment struct {
	pairs       []Pair
	byColumn    map[int]int // column index -> index into pairs
	byCandidate map[int]int // candidate index -> index into pairs
}

func newAssignment() *Assignment {
	return &Assignment{
		byColumn:    make(map[int]int),
		byCandidate: make(map[int]int),
	}
}

func (a *Assignment) assign(column, candidate int, method Method) {
	a.byColumn[column] = len(a.pairs)
	a.byCandidate[candidate] = len(a.pairs)
	a.pairs = append(a.pairs, Pair{Column: column, Candidate: candidate, Method: method})
}

// Len returns the number of assigned pairs.
func (a *Assignment) Len() int {
	return len(a.pairs)
}

// Pairs returns the assignments in the order they were made. Callers
// must not mutate the returned slice.
func (a *Assignment) Pairs() []Pair {
	return a.pairs
}

// Candidate returns the candidate index assigned to a column and the
// pass that assigned it. ok is false for unassigned columns.
func (a *Assignment) Candidate(column int) (candidate int, method Method, ok bool) {
	i, ok := a.byColumn[column]
	if !ok {
		return 0, MethodNone, false
	}
	return a.pairs[i].Candidate, a.pairs[i].Method, true
}

// Column returns the column assigned to a candidate. ok is false for
// unmatched candidates.
func (a *Assignment) Column(candidate int) (column int, ok bool) {
	i, ok := a.byCandidate[candidate]
	if !ok {
		return 0, false
	}
	return a.pairs[i].Column, true
}

func (a *Assignment) columnAssigned(column int) bool {
	_, ok := a.byColumn[column]
	return ok
}

func (a *Assignment) candidateAssigned(candidate int) bool {
	_, ok := a.byCandidate[candidate]
	return ok
}

// Columns assigns extracted columns to slate candidates. It never
// fails: it returns however many assignments the passes find, possibly
// zero, and the caller decides whether that is enough.
func Columns(cols []Column, slate tally.Slate, scorer *similarity.Scorer, cfg Config) *Assignment {
	a := newAssignment()
	if len(cols) == 0 || len(slate) == 0 {
		return a
	}

	passStrictIdentity(a, cols, slate, scorer, cfg)
	passNameOnly(a, cols, slate, scorer, cfg)
	passPartyNumeric(a, cols, slate, scorer, cfg)
	if cfg.OrdinalFallback {
		passOrdinal(a, cols, slate)
	}
	return a
}

// passStrictIdentity assigns on high-confidence name matches backed by
// a party match.
func passStrictIdentity(a *Assignment, cols []Column, slate tally.Slate, scorer *similarity.Scorer, cfg Config) {
	for ci := range cols {
		if a.columnAssigned(ci) || cols[ci].Label == "" {
			continue
		}
		for si, candidate := range slate {
			if a.candidateAssigned(si) {
				continue
			}
			if scorer.NamesMatch(cols[ci].Label, candidate.Name, cfg.StrictNameThreshold) &&
				scorer.PartyMatches(cols[ci].Party, candidate.Party) {
				a.assign(ci, si, MethodStrictIdentity)
				break
			}
		}
	}
}

// passNameOnly relaxes the name threshold and drops the party
// requirement.
func passNameOnly(a *Assignment, cols []Column, slate tally.Slate, scorer *similarity.Scorer, cfg Config) {
	for ci := range cols {
		if a.columnAssigned(ci) || cols[ci].Label == "" {
			continue
		}
		for si, candidate := range slate {
			if a.candidateAssigned(si) {
				continue
			}
			if scorer.NamesMatch(cols[ci].Label, candidate.Name, cfg.RelaxedNameThreshold) {
				a.assign(ci, si, MethodNameOnly)
				break
			}
		}
	}
}

// passPartyNumeric assigns columns whose sum is acceptably close to a
// candidate's authoritative total. When the column carries party text
// it must agree; unlabeled columns qualify on closeness alone. Among
// band-passing candidates the numerically closest wins, with earlier
// slate order breaking exact ties.
func passPartyNumeric(a *Assignment, cols []Column, slate tally.Slate, scorer *similarity.Scorer, cfg Config) {
	for ci := range cols {
		if a.columnAssigned(ci) {
			continue
		}
		best := -1
		bestDrift := math.Inf(1)
		for si, candidate := range slate {
			if a.candidateAssigned(si) {
				continue
			}
			if cols[ci].Party != "" && !scorer.PartyMatches(cols[ci].Party, candidate.Party) {
				continue
			}
			if !similarity.WithinBand(cols[ci].Sum, candidate.Total, cfg.ClosenessBand) {
				continue
			}
			drift := math.Abs(similarity.Closeness(cols[ci].Sum, candidate.Total) - 1)
			if drift < bestDrift {
				best, bestDrift = si, drift
			}
		}
		if best >= 0 {
			a.assign(ci, best, MethodPartyNumeric)
		}
	}
}

// passOrdinal matches declared ballot position to column index: the
// candidate listed first on the ballot takes the first unassigned
// column, and so on. Candidates without a declared position never
// match here.
func passOrdinal(a *Assignment, cols []Column, slate tally.Slate) {
	for ci := range cols {
		if a.columnAssigned(ci) {
			continue
		}
		for si, candidate := range slate {
			if a.candidateAssigned(si) || candidate.Position == 0 {
				continue
			}
			if candidate.Position-1 == ci {
				a.assign(ci, si, MethodOrdinal)
				break
			}
		}
	}
}
