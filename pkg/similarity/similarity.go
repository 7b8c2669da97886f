// Package similarity scores how alike two identities are, textually and
// numerically. The matcher drives its pass cascade with these scores;
// nothing here decides an assignment on its own.
package similarity

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/agentstation/recount/pkg/normalize"
)

// independentMarker is the substring convention for independent
// candidates: any two party labels both containing "IND" are treated as
// the same (unaffiliated) party.
const independentMarker = "IND"

// Scorer computes textual similarity between identity strings. It owns
// a Normalizer so both sides of every comparison are canonicalized the
// same way, and a party alias table supplied by the caller.
type Scorer struct {
	normalizer *normalize.Normalizer
	aliases    map[string]string // normalized party label -> equivalence class
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithNormalizer replaces the default normalizer.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(s *Scorer) {
		if n != nil {
			s.normalizer = n
		}
	}
}

// WithAliases registers party equivalence classes. Each class is a set
// of labels treated as the same party, e.g. {"ADMK", "AIADMK"}. The
// table is configuration: it is never hard-coded in the engine.
func WithAliases(classes ...[]string) Option {
	return func(s *Scorer) {
		for _, class := range classes {
			if len(class) == 0 {
				continue
			}
			canonical := s.normalizer.Party(class[0])
			for _, label := range class {
				s.aliases[s.normalizer.Party(label)] = canonical
			}
		}
	}
}

// New creates a Scorer with a default Normalizer and no aliases.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		normalizer: normalize.New(),
		aliases:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Normalizer returns the scorer's normalizer, shared with the
// orchestrator so identities are canonicalized exactly once per form.
func (s *Scorer) Normalizer() *normalize.Normalizer {
	return s.normalizer
}

// NamesMatch reports whether two names refer to the same candidate.
// The cascade runs from cheap to permissive: exact equality,
// containment, token overlap, largest-token equality, and finally an
// edit-distance ratio against the caller's threshold. Any pass
// succeeding is a match; order matters only for interpretability since
// the result is an OR across passes.
func (s *Scorer) NamesMatch(a, b string, threshold float64) bool {
	na, nb := s.normalizer.Name(a), s.normalizer.Name(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	if len(na) > 3 && len(nb) > 3 &&
		(strings.Contains(na, nb) || strings.Contains(nb, na)) {
		return true
	}
	if sharedTokens(na, nb) >= 2 {
		return true
	}
	la, lb := largestToken(na), largestToken(nb)
	if len(la) > 3 && len(lb) > 3 && la == lb {
		return true
	}
	return Ratio(na, nb) >= threshold
}

// PartyMatches reports whether two party labels denote the same party:
// normalized equality, the independent-candidate convention, or a
// shared alias equivalence class.
func (s *Scorer) PartyMatches(p, q string) bool {
	np, nq := s.normalizer.Party(p), s.normalizer.Party(q)
	if np == "" || nq == "" {
		return false
	}
	if np == nq {
		return true
	}
	if strings.Contains(np, independentMarker) && strings.Contains(nq, independentMarker) {
		return true
	}
	return s.resolveAlias(np) == s.resolveAlias(nq)
}

// resolveAlias maps a normalized label to its equivalence class. Labels
// outside every class resolve to themselves, so two unknown labels only
// match when equal (already handled above).
func (s *Scorer) resolveAlias(label string) string {
	if canonical, ok := s.aliases[label]; ok {
		return canonical
	}
	return label
}

// Ratio returns an edit-distance similarity in [0, 1]: 1 is identical,
// 0 shares nothing. Defined as 1 - distance/maxLen over runes.
func Ratio(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len([]rune(a))
	if lb := len([]rune(b)); lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}

// Closeness returns sum/target, the numeric closeness ratio between an
// extracted column sum and an authoritative total. Target must be
// positive; callers gate on that before asking.
func Closeness(sum, target int64) float64 {
	return float64(sum) / float64(target)
}

// Band is an acceptance interval for closeness ratios.
type Band struct {
	Low  float64 `yaml:"low" json:"low"`
	High float64 `yaml:"high" json:"high"`
}

// Contains reports whether the ratio falls inside the band, inclusive.
func (b Band) Contains(ratio float64) bool {
	return ratio >= b.Low && ratio <= b.High
}

// WithinBand reports whether sum is acceptably close to target. A
// non-positive target never matches numerically: closeness is undefined
// at zero and the redistribution edge case (target 0 forces all rows to
// 0) is handled downstream, not here.
func WithinBand(sum, target int64, band Band) bool {
	if target <= 0 {
		return false
	}
	return band.Contains(Closeness(sum, target))
}

// sharedTokens counts tokens common to both normalized names.
func sharedTokens(a, b string) int {
	seen := make(map[string]struct{})
	for _, tok := range strings.Fields(a) {
		seen[tok] = struct{}{}
	}
	count := 0
	for _, tok := range strings.Fields(b) {
		if _, ok := seen[tok]; ok {
			count++
			delete(seen, tok)
		}
	}
	return count
}

// largestToken returns the longest token of a normalized name, with
// earlier tokens winning length ties.
func largestToken(s string) string {
	largest := ""
	for _, tok := range strings.Fields(s) {
		if len(tok) > len(largest) {
			largest = tok
		}
	}
	return largest
}
