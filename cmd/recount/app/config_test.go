package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "table", config.Format)
	assert.Equal(t, defaultWorkers, config.Workers)
	assert.Equal(t, "auto", config.LogFormat)
	assert.Equal(t, "stderr", config.LogOutput)
}

func TestUpdateFromFlags(t *testing.T) {
	t.Run("flags take precedence", func(t *testing.T) {
		config := &Config{Format: "table"}
		config.UpdateFromFlags(true, false, true, "json", "debug")

		assert.True(t, config.Verbose)
		assert.False(t, config.Quiet)
		assert.True(t, config.NoColor)
		assert.Equal(t, "json", config.Format)
		assert.Equal(t, "debug", config.LogLevel)
	})

	t.Run("empty flag values keep existing config", func(t *testing.T) {
		config := &Config{Format: "json", LogLevel: "warn"}
		config.UpdateFromFlags(false, false, false, "", "")

		assert.Equal(t, "json", config.Format)
		assert.Equal(t, "warn", config.LogLevel)
	})
}
