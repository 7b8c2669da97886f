package load

import (
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/recount"
	"github.com/agentstation/recount/pkg/errors"
	"github.com/agentstation/recount/pkg/match"
	"github.com/agentstation/recount/pkg/normalize"
)

// EngineConfig is the on-disk shape of the reconciliation knobs. Absent
// fields keep their defaults.
type EngineConfig struct {
	// Honorifics replaces the default honorific token list when set.
	Honorifics []string `yaml:"honorifics,omitempty"`

	// Aliases lists party label equivalence classes.
	Aliases [][]string `yaml:"aliases,omitempty"`

	// Match overrides matcher thresholds when set.
	Match *match.Config `yaml:"match,omitempty"`

	// MinMatches is the column count below which a result is reported
	// as insufficient.
	MinMatches int `yaml:"min_matches,omitempty"`

	// MaxAdjustment flags columns adjusted by more than this fraction
	// of their raw sum as suspect. Zero disables the flag.
	MaxAdjustment float64 `yaml:"max_adjustment,omitempty"`
}

// Config reads engine configuration from a YAML file.
func Config(path string) (*EngineConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	return ReadConfig(f, path)
}

// ReadConfig reads engine configuration in YAML form.
func ReadConfig(r io.Reader, source string) (*EngineConfig, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapIO("read", source, err)
	}

	// Pre-seed so a partial match section merges over the defaults
	// instead of zeroing the unspecified thresholds.
	defaults := match.DefaultConfig()
	cfg := EngineConfig{Match: &defaults}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapParse("yaml", source, err)
	}
	return &cfg, nil
}

// Options converts the file configuration into engine options.
func (c *EngineConfig) Options() []recount.Option {
	if c == nil {
		return nil
	}

	var opts []recount.Option
	if len(c.Honorifics) > 0 {
		opts = append(opts, recount.WithNormalizer(normalize.New(normalize.WithHonorifics(c.Honorifics...))))
	}
	if len(c.Aliases) > 0 {
		opts = append(opts, recount.WithAliases(c.Aliases...))
	}
	if c.Match != nil {
		opts = append(opts, recount.WithMatchConfig(*c.Match))
	}
	if c.MinMatches > 0 {
		opts = append(opts, recount.WithMinMatches(c.MinMatches))
	}
	if c.MaxAdjustment > 0 {
		opts = append(opts, recount.WithMaxAdjustment(c.MaxAdjustment))
	}
	return opts
}
