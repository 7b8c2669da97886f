package recount_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/recount"
	"github.com/agentstation/recount/pkg/errors"
	"github.com/agentstation/recount/pkg/match"
	"github.com/agentstation/recount/pkg/tally"
)

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		r, err := recount.New()
		require.NoError(t, err)
		assert.NotNil(t, r)
	})

	t.Run("nil options are skipped", func(t *testing.T) {
		r, err := recount.New(nil, recount.WithMinMatches(1))
		require.NoError(t, err)
		assert.NotNil(t, r)
	})

	t.Run("option errors surface", func(t *testing.T) {
		_, err := recount.New(recount.WithMaxAdjustment(2))
		require.Error(t, err)
	})
}

func TestReconcile(t *testing.T) {
	r, err := recount.New(recount.WithAliases([]string{"ADMK", "AIADMK"}))
	require.NoError(t, err)

	table := tally.MustTable([]tally.Row{
		{Key: "booth-1", Values: []int64{10, 20}},
		{Key: "booth-2", Values: []int64{10, 20}},
	})
	require.NoError(t, table.SetHeaders([]tally.Header{
		{Label: "KUMAR", Party: "AIADMK"},
		{Label: "RAVI", Party: "DMK"},
	}))
	slate := tally.Slate{
		{Name: "KUMAR", Party: "ADMK", Total: 22},
		{Name: "RAVI", Party: "DMK", Total: 40},
	}

	result, err := r.Reconcile(context.Background(), table, slate)
	require.NoError(t, err)

	assert.Equal(t, int64(22), result.Corrected.ColumnSum(0))
	assert.Equal(t, int64(40), result.Corrected.ColumnSum(1))
	assert.Equal(t, match.MethodStrictIdentity, result.Candidates[0].Method)
	assert.True(t, result.Sufficient)
}

func TestValidate(t *testing.T) {
	r, err := recount.New()
	require.NoError(t, err)

	t.Run("valid inputs pass", func(t *testing.T) {
		table := tally.MustTable([]tally.Row{{Key: "b", Values: []int64{1}}})
		slate := tally.Slate{{Name: "KUMAR", Total: 1}}
		assert.NoError(t, r.Validate(table, slate))
	})

	t.Run("degenerate inputs pass", func(t *testing.T) {
		assert.NoError(t, r.Validate(nil, nil))
	})

	t.Run("bad slate fails", func(t *testing.T) {
		err := r.Validate(nil, tally.Slate{{Name: "KUMAR", Total: -1}})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})
}
