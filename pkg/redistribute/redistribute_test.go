package redistribute_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/recount/pkg/redistribute"
)

func TestColumn(t *testing.T) {
	tests := []struct {
		name        string
		values      []int64
		target      int64
		want        []int64
		wantTouched int
	}{
		{
			name:        "matching sum is a no-op",
			values:      []int64{10, 20, 30},
			target:      60,
			want:        []int64{10, 20, 30},
			wantTouched: 0,
		},
		{
			name:        "undercount spread by remainder",
			values:      []int64{10, 10, 10},
			target:      33,
			want:        []int64{11, 11, 11},
			wantTouched: 3,
		},
		{
			name:        "remainder goes to largest fractions first",
			values:      []int64{1, 1, 1},
			target:      10,
			want:        []int64{4, 3, 3},
			wantTouched: 3,
		},
		{
			name:        "zero column falls back to uniform",
			values:      []int64{0, 0, 0},
			target:      9,
			want:        []int64{3, 3, 3},
			wantTouched: 3,
		},
		{
			name:        "zero column uniform with remainder",
			values:      []int64{0, 0, 0},
			target:      10,
			want:        []int64{4, 3, 3},
			wantTouched: 3,
		},
		{
			name:        "zero target forces zeros",
			values:      []int64{5, 0, 7},
			target:      0,
			want:        []int64{0, 0, 0},
			wantTouched: 2,
		},
		{
			name:        "overcount scaled down",
			values:      []int64{50, 30, 20},
			target:      50,
			want:        []int64{25, 15, 10},
			wantTouched: 3,
		},
		{
			name:        "proportions preserved",
			values:      []int64{600, 300, 100},
			target:      500,
			want:        []int64{300, 150, 50},
			wantTouched: 3,
		},
		{
			name:        "single row takes everything",
			values:      []int64{7},
			target:      12,
			want:        []int64{12},
			wantTouched: 1,
		},
		{
			name:        "empty column",
			values:      nil,
			target:      0,
			want:        []int64{},
			wantTouched: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, touched := redistribute.Column(tt.values, tt.target)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantTouched, touched)
		})
	}
}

func TestColumnInvariants(t *testing.T) {
	cases := []struct {
		values []int64
		target int64
	}{
		{[]int64{10, 10, 10}, 33},
		{[]int64{1, 1, 1}, 10},
		{[]int64{0, 0, 0}, 9},
		{[]int64{123, 456, 789, 12, 0, 3}, 1001},
		{[]int64{5, 0, 7}, 0},
		{[]int64{99999, 1}, 100001},
		{[]int64{2, 3, 5, 7, 11, 13}, 17},
		{[]int64{1000000}, 999999},
	}

	for _, tc := range cases {
		got, _ := redistribute.Column(tc.values, tc.target)

		require.Len(t, got, len(tc.values), "row count must be preserved")

		var sum int64
		for i, v := range got {
			assert.GreaterOrEqual(t, v, int64(0), "row %d went negative for %v -> %d", i, tc.values, tc.target)
			sum += v
		}
		assert.Equal(t, tc.target, sum, "sum must equal target exactly for %v -> %d", tc.values, tc.target)
	}
}

func TestColumnIdempotent(t *testing.T) {
	cases := []struct {
		values []int64
		target int64
	}{
		{[]int64{10, 10, 10}, 33},
		{[]int64{1, 1, 1}, 10},
		{[]int64{0, 0, 0}, 9},
		{[]int64{123, 456, 789}, 1000},
	}

	for _, tc := range cases {
		once, _ := redistribute.Column(tc.values, tc.target)
		twice, touched := redistribute.Column(once, tc.target)
		assert.Equal(t, once, twice, "reapplying to corrected output must change nothing")
		assert.Equal(t, 0, touched)
	}
}

func TestColumnDeterministic(t *testing.T) {
	values := []int64{7, 7, 7, 7, 7}
	first, _ := redistribute.Column(values, 38)
	for i := 0; i < 20; i++ {
		again, _ := redistribute.Column(values, 38)
		assert.Equal(t, first, again)
	}

	// Equal remainders resolve by row order: three leftover units land
	// on the first three rows.
	assert.Equal(t, []int64{8, 8, 8, 7, 7}, first)
}

func TestColumnDoesNotMutateInput(t *testing.T) {
	values := []int64{10, 10, 10}
	_, _ = redistribute.Column(values, 33)
	assert.Equal(t, []int64{10, 10, 10}, values)
}
