package reconcile

import (
	"github.com/agentstation/recount/pkg/errors"
	"github.com/agentstation/recount/pkg/match"
	"github.com/agentstation/recount/pkg/normalize"
	"github.com/agentstation/recount/pkg/similarity"
)

// options configures a reconciler. Honorific lists, alias tables,
// thresholds, and plausibility caps all arrive here explicitly; there is
// no process-wide state.
type options struct {
	scorer        *similarity.Scorer
	scorerOpts    []similarity.Option
	matchConfig   match.Config
	minMatches    int
	maxAdjustment float64
}

func defaultOptions() *options {
	return &options{
		matchConfig: match.DefaultConfig(),
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	// Build the scorer last so WithNormalizer and WithAliases compose
	// regardless of order, unless the caller supplied a whole scorer.
	if options.scorer == nil {
		options.scorer = similarity.New(options.scorerOpts...)
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithScorer sets a fully configured similarity scorer, overriding
// WithNormalizer and WithAliases.
func WithScorer(scorer *similarity.Scorer) Option {
	return func(o *options) error {
		if scorer == nil {
			return &errors.ValidationError{
				Field:   "scorer",
				Message: "cannot be nil",
			}
		}
		o.scorer = scorer
		return nil
	}
}

// WithNormalizer sets the identity normalizer (honorific list and
// folding rules) used by the default scorer.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(o *options) error {
		if n == nil {
			return &errors.ValidationError{
				Field:   "normalizer",
				Message: "cannot be nil",
			}
		}
		o.scorerOpts = append(o.scorerOpts, similarity.WithNormalizer(n))
		return nil
	}
}

// WithAliases registers party alias equivalence classes with the
// default scorer.
func WithAliases(classes ...[]string) Option {
	return func(o *options) error {
		o.scorerOpts = append(o.scorerOpts, similarity.WithAliases(classes...))
		return nil
	}
}

// WithMatchConfig sets the matching thresholds.
func WithMatchConfig(cfg match.Config) Option {
	return func(o *options) error {
		if cfg.ClosenessBand.Low > cfg.ClosenessBand.High {
			return &errors.ValidationError{
				Field:   "match_config.closeness_band",
				Message: "low bound exceeds high bound",
			}
		}
		o.matchConfig = cfg
		return nil
	}
}

// WithMinMatches sets how many assigned pairs a run needs before the
// result reports Sufficient. The engine still returns a complete
// result below the minimum; acting on insufficiency is the caller's
// call.
func WithMinMatches(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return &errors.ValidationError{
				Field:   "min_matches",
				Value:   n,
				Message: "cannot be negative",
			}
		}
		o.minMatches = n
		return nil
	}
}

// WithMaxAdjustment sets the plausibility fraction above which a
// candidate's correction is flagged Suspect in the report. Zero
// disables the check. The correction itself is never capped: whether
// an implausibly large correction invalidates a table is domain
// policy, and it belongs to the caller.
func WithMaxAdjustment(fraction float64) Option {
	return func(o *options) error {
		if fraction < 0 || fraction > 1 {
			return &errors.ValidationError{
				Field:   "max_adjustment",
				Value:   fraction,
				Message: "must be a fraction in [0, 1]",
			}
		}
		o.maxAdjustment = fraction
		return nil
	}
}
