package similarity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/recount/pkg/similarity"
)

func TestNamesMatch(t *testing.T) {
	s := similarity.New()

	tests := []struct {
		name      string
		a, b      string
		threshold float64
		want      bool
	}{
		{"exact after normalization", "Thiru. S. Kumar", "S KUMAR", 0.95, true},
		{"containment", "KUMARASAMY", "KUMARASAMY R", 0.95, true},
		{"shared tokens", "S RAVI KUMAR", "RAVI KUMAR M", 0.95, true},
		{"largest token equal", "MURUGAN A", "K MURUGAN", 0.95, true},
		{"suffix containment", "KUMAR", "KUMARN", 0.95, true},
		{"edit distance within threshold", "KUMARN", "KUMARS", 0.8, true},
		{"edit distance outside threshold", "KUMAR", "RAVI", 0.8, false},
		{"empty side never matches", "", "KUMAR", 0.1, false},
		{"both empty never match", "", "", 0.1, false},
		{"short containment not enough", "RAM", "RAMA KRISHNAN", 0.95, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.NamesMatch(tt.a, tt.b, tt.threshold))
		})
	}
}

func TestNamesMatchThresholdMonotonic(t *testing.T) {
	s := similarity.New()

	// Anything matching at a strict threshold also matches at any
	// looser one.
	pairs := [][2]string{
		{"KUMARN", "KUMARS"},
		{"RAVICHANDRAN", "RAVICHANDRAM"},
		{"MURUGAN", "MURUGESAN"},
	}
	thresholds := []float64{0.95, 0.85, 0.7, 0.6, 0.5}

	for _, pair := range pairs {
		matchedStricter := false
		for _, threshold := range thresholds {
			matched := s.NamesMatch(pair[0], pair[1], threshold)
			if matchedStricter {
				assert.True(t, matched,
					"%q vs %q matched at a stricter threshold but not at %v", pair[0], pair[1], threshold)
			}
			matchedStricter = matchedStricter || matched
		}
		assert.True(t, matchedStricter, "%q vs %q never matched", pair[0], pair[1])
	}
}

func TestPartyMatches(t *testing.T) {
	s := similarity.New(similarity.WithAliases(
		[]string{"ADMK", "AIADMK", "A.I.A.D.M.K."},
	))

	tests := []struct {
		name string
		p, q string
		want bool
	}{
		{"exact", "DMK", "DMK"},
		{"case and punctuation folded", "d.m.k.", "D M K"},
		{"independent convention", "IND", "Independent"},
		{"independent convention both sides", "IND.", "INDEPENDENT"},
		{"alias class", "ADMK", "AIADMK"},
		{"alias class with punctuation", "AIADMK", "A.I.A.D.M.K."},
		{"different parties", "DMK", "ADMK"},
		{"empty never matches", "", "DMK"},
		{"unknown labels only match when equal", "PMK", "MDMK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.PartyMatches(tt.p, tt.q), "%q vs %q", tt.p, tt.q)
		})
	}
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 1.0, similarity.Ratio("KUMAR", "KUMAR"))
	assert.Equal(t, 1.0, similarity.Ratio("", ""))
	assert.Equal(t, 0.0, similarity.Ratio("AB", "XY"))

	// One edit over six runes.
	assert.InDelta(t, 1.0-1.0/6.0, similarity.Ratio("KUMARN", "KUMARS"), 1e-9)

	// Symmetric.
	assert.Equal(t, similarity.Ratio("RAVI", "RAVIC"), similarity.Ratio("RAVIC", "RAVI"))
}

func TestCloseness(t *testing.T) {
	assert.Equal(t, 1.0, similarity.Closeness(100, 100))
	assert.Equal(t, 0.5, similarity.Closeness(50, 100))
	assert.Equal(t, 2.0, similarity.Closeness(200, 100))
}

func TestBand(t *testing.T) {
	band := similarity.Band{Low: 0.7, High: 1.3}

	t.Run("contains inclusive", func(t *testing.T) {
		assert.True(t, band.Contains(0.7))
		assert.True(t, band.Contains(1.0))
		assert.True(t, band.Contains(1.3))
		assert.False(t, band.Contains(0.69))
		assert.False(t, band.Contains(1.31))
	})

	t.Run("within band", func(t *testing.T) {
		assert.True(t, similarity.WithinBand(90, 100, band))
		assert.True(t, similarity.WithinBand(130, 100, band))
		assert.False(t, similarity.WithinBand(60, 100, band))
	})

	t.Run("zero target never matches", func(t *testing.T) {
		assert.False(t, similarity.WithinBand(0, 0, band))
		assert.False(t, similarity.WithinBand(10, 0, band))
		assert.False(t, similarity.WithinBand(10, -5, band))
	})
}
