// Package normalize canonicalizes free-text identity fields (candidate
// names, party labels) into a comparable form. Extracted text carries
// OCR noise, honorifics, and inconsistent punctuation; normalization
// collapses all of that so the similarity scorer compares like with
// like. All functions are pure and never fail: empty input yields
// empty output.
package normalize

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultHonorifics are the title tokens stripped from candidate names
// by default. The Tamil set (THIRU, SELVI, ...) reflects the election
// rolls this engine was built against; callers with other sources pass
// their own list via WithHonorifics.
var DefaultHonorifics = []string{
	"DR", "MR", "MRS", "MS", "SRI", "SHRI", "SMT", "KUM",
	"THIRU", "TMT", "SELVI", "THIRUMATHI", "ADV", "PROF",
}

// punctuation characters replaced by a single space before tokenizing.
const punctuation = `.,-'"()`

// Normalizer canonicalizes identity strings. The zero value is not
// usable; construct with New.
type Normalizer struct {
	honorifics map[string]struct{}

	// prefixes holds honorifics of 3+ runes, longest first, so glued
	// prefix stripping is deterministic.
	prefixes []string
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithHonorifics replaces the default honorific token list.
func WithHonorifics(tokens ...string) Option {
	return func(n *Normalizer) {
		n.honorifics = make(map[string]struct{}, len(tokens))
		n.prefixes = n.prefixes[:0]
		for _, tok := range tokens {
			folded := fold(tok)
			n.honorifics[folded] = struct{}{}
			if len(folded) >= 3 {
				n.prefixes = append(n.prefixes, folded)
			}
		}
		sort.Slice(n.prefixes, func(i, j int) bool {
			if len(n.prefixes[i]) != len(n.prefixes[j]) {
				return len(n.prefixes[i]) > len(n.prefixes[j])
			}
			return n.prefixes[i] < n.prefixes[j]
		})
	}
}

// New creates a Normalizer with the default honorific list unless
// overridden by options.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{}
	WithHonorifics(DefaultHonorifics...)(n)
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Name canonicalizes a candidate name: uppercase fold, diacritic strip,
// punctuation to spaces, honorific removal, whitespace collapse, trim.
func (n *Normalizer) Name(s string) string {
	tokens := strings.Fields(foldPunctuation(s))
	kept := tokens[:0]
	for _, tok := range tokens {
		if _, honorific := n.honorifics[tok]; honorific {
			continue
		}
		// OCR often glues the honorific to the name ("THIRU.KUMAR"
		// survives punctuation folding as "THIRU KUMAR", but
		// "THIRUKUMAR" does not split). Strip known prefixes only when
		// something meaningful remains.
		kept = append(kept, n.stripPrefix(tok))
	}
	return strings.Join(kept, " ")
}

// Party canonicalizes a party label. Honorifics do not apply to party
// strings; only case, diacritics, punctuation, and whitespace fold.
func (n *Normalizer) Party(s string) string {
	return strings.Join(strings.Fields(foldPunctuation(s)), " ")
}

// Tokens returns the canonical name split into its tokens.
func (n *Normalizer) Tokens(s string) []string {
	return strings.Fields(n.Name(s))
}

// stripPrefix removes a leading honorific glued to a token. Short
// honorifics ("MR", "MS") glue too easily to real name fragments, so
// only prefixes of 3+ runes are considered, and only when a meaningful
// remainder survives.
func (n *Normalizer) stripPrefix(tok string) string {
	for _, honorific := range n.prefixes {
		if rest, ok := strings.CutPrefix(tok, honorific); ok && len(rest) >= 3 {
			return rest
		}
	}
	return tok
}

// foldPunctuation uppercases, strips diacritics, and replaces
// punctuation with spaces.
func foldPunctuation(s string) string {
	folded := fold(s)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if strings.ContainsRune(punctuation, r) {
			b.WriteRune(' ')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// fold uppercases and strips combining marks (NFD decompose, drop
// marks, NFC recompose). Transform errors cannot occur with this chain;
// on the impossible path the uppercased input is returned unchanged.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToUpper(s))
	if err != nil {
		return strings.ToUpper(s)
	}
	return out
}
