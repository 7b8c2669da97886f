package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/recount/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "slate",
			ID:       "nanguneri",
		}
		assert.Equal(t, "slate nanguneri not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("table", "form20")
		assert.Equal(t, "table form20 not found", err.Error())
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("slate", "test")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "rows[3]",
			Message: "negative count",
		}
		assert.Equal(t, "validation failed for field rows[3]: negative count", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Message: "ragged table",
		}
		assert.Equal(t, "validation failed: ragged table", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewValidationError("total", int64(-12), "must be non-negative")
		assert.Equal(t, "validation failed for field total: must be non-negative", err.Error())
		assert.Equal(t, int64(-12), err.Value)
	})

	t.Run("wrap helper", func(t *testing.T) {
		assert.Nil(t, pkgerrors.WrapValidation("slate", nil))

		err := pkgerrors.WrapValidation("slate", errors.New("duplicate position"))
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidationError(err))
		assert.Contains(t, err.Error(), "duplicate position")
	})
}

func TestConfigError(t *testing.T) {
	t.Run("with component", func(t *testing.T) {
		err := pkgerrors.NewConfigError("matcher", "band low above high", nil)
		assert.Equal(t, "configuration error in matcher: band low above high", err.Error())
	})

	t.Run("without component", func(t *testing.T) {
		err := &pkgerrors.ConfigError{Message: "missing engine config"}
		assert.Equal(t, "configuration error: missing engine config", err.Error())
	})

	t.Run("unwrap", func(t *testing.T) {
		base := errors.New("yaml: line 4")
		err := pkgerrors.NewConfigError("engine", "unreadable", base)
		assert.Equal(t, base, errors.Unwrap(err))
	})
}

func TestParseError(t *testing.T) {
	t.Run("with file and line", func(t *testing.T) {
		err := &pkgerrors.ParseError{
			Format:  "csv",
			File:    "form20.csv",
			Line:    17,
			Message: "count cell is not an integer: abc",
		}
		assert.Equal(t, "parse error in csv file form20.csv:17: count cell is not an integer: abc", err.Error())
	})

	t.Run("with file only", func(t *testing.T) {
		err := pkgerrors.NewParseError("yaml", "slate.yaml", "unexpected mapping", nil)
		assert.Equal(t, "parse error in yaml file slate.yaml: unexpected mapping", err.Error())
	})

	t.Run("without file", func(t *testing.T) {
		err := &pkgerrors.ParseError{Format: "csv", Message: "empty record"}
		assert.Equal(t, "csv parse error: empty record", err.Error())
	})

	t.Run("wrap helper", func(t *testing.T) {
		assert.Nil(t, pkgerrors.WrapParse("csv", "form20.csv", nil))

		base := errors.New("unexpected EOF")
		err := pkgerrors.WrapParse("csv", "form20.csv", base)
		require.Error(t, err)
		assert.Equal(t, base, errors.Unwrap(err))
	})
}

func TestIOError(t *testing.T) {
	t.Run("with path", func(t *testing.T) {
		base := errors.New("permission denied")
		err := pkgerrors.NewIOError("open", "/data/form20.csv", base)
		assert.Equal(t, "IO error during open of /data/form20.csv: permission denied", err.Error())
		assert.Equal(t, base, errors.Unwrap(err))
	})

	t.Run("without path", func(t *testing.T) {
		err := &pkgerrors.IOError{Operation: "read", Message: "closed pipe"}
		assert.Equal(t, "IO error during read: closed pipe", err.Error())
	})

	t.Run("wrap helper", func(t *testing.T) {
		assert.Nil(t, pkgerrors.WrapIO("read", "slate.yaml", nil))

		err := pkgerrors.WrapIO("read", "slate.yaml", errors.New("no such file"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "slate.yaml")
	})
}

func TestResourceError(t *testing.T) {
	t.Run("with id", func(t *testing.T) {
		base := errors.New("boom")
		err := pkgerrors.NewResourceError("reconcile", "table", "booth-12", base)
		assert.Equal(t, "failed to reconcile table booth-12: boom", err.Error())
		assert.Equal(t, base, errors.Unwrap(err))
	})

	t.Run("without id", func(t *testing.T) {
		err := pkgerrors.NewResourceError("load", "config", "", errors.New("not yaml"))
		assert.Equal(t, "failed to load config: not yaml", err.Error())
	})

	t.Run("wrap helper", func(t *testing.T) {
		assert.Nil(t, pkgerrors.WrapResource("load", "slate", "x", nil))

		err := pkgerrors.WrapResource("create", "engine", "", errors.New("bad option"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create engine")
	})
}

func TestSentinelsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(pkgerrors.ErrNotFound, pkgerrors.ErrInvalidInput))
	assert.False(t, errors.Is(pkgerrors.ErrInvalidInput, pkgerrors.ErrReadOnly))
	assert.False(t, pkgerrors.IsNotFound(pkgerrors.NewValidationError("f", nil, "m")))
	assert.False(t, pkgerrors.IsValidationError(pkgerrors.NewNotFoundError("r", "id")))
}
