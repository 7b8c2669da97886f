package tally

import (
	"fmt"

	"github.com/agentstation/recount/pkg/errors"
)

// Candidate is one authoritative identity record: a named candidate,
// their party label, and the official aggregate vote count the
// extracted data must reconcile against. Position is the 1-based ballot
// position when the source declares one; zero means unset.
type Candidate struct {
	Name     string `json:"name" yaml:"name"`
	Party    string `json:"party" yaml:"party"`
	Total    int64  `json:"total" yaml:"total"`
	Position int    `json:"position,omitempty" yaml:"position,omitempty"`
}

// String returns "Name (Party)" for log and report output.
func (c Candidate) String() string {
	if c.Party == "" {
		return c.Name
	}
	return fmt.Sprintf("%s (%s)", c.Name, c.Party)
}

// Slate is the ordered authoritative candidate list for one
// reconciliation group, typically one constituency. Order is
// significant: it is the tie-break order for matching.
type Slate []Candidate

// Validate checks the loading contract: no negative totals, no invalid
// ballot positions. A nil or empty slate is valid (degenerate input,
// handled by the orchestrator).
func (s Slate) Validate() error {
	for i, c := range s {
		if c.Total < 0 {
			return &errors.ValidationError{
				Field:   fmt.Sprintf("candidates[%d].total", i),
				Value:   c.Total,
				Message: fmt.Sprintf("authoritative total for %q must be non-negative", c.Name),
			}
		}
		if c.Position < 0 {
			return &errors.ValidationError{
				Field:   fmt.Sprintf("candidates[%d].position", i),
				Value:   c.Position,
				Message: "ballot position must be positive when set",
			}
		}
	}
	return nil
}

// TotalVotes returns the sum of all authoritative totals.
func (s Slate) TotalVotes() int64 {
	var sum int64
	for _, c := range s {
		sum += c.Total
	}
	return sum
}
