package recount

import (
	"github.com/agentstation/recount/pkg/match"
	"github.com/agentstation/recount/pkg/normalize"
	"github.com/agentstation/recount/pkg/reconcile"
	"github.com/agentstation/recount/pkg/similarity"
)

// Option is a function that configures a Recount instance.
type Option func(*config) error

// config collects reconciler options before construction.
type config struct {
	reconcileOpts []reconcile.Option
}

func defaultConfig() *config {
	return &config{}
}

// WithScorer configures the similarity scorer used for matching.
func WithScorer(scorer *similarity.Scorer) Option {
	return func(c *config) error {
		c.reconcileOpts = append(c.reconcileOpts, reconcile.WithScorer(scorer))
		return nil
	}
}

// WithNormalizer configures the name and party normalizer.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(c *config) error {
		c.reconcileOpts = append(c.reconcileOpts, reconcile.WithNormalizer(n))
		return nil
	}
}

// WithAliases configures party alias equivalence classes. Labels within a
// class match each other during party comparison.
func WithAliases(classes ...[]string) Option {
	return func(c *config) error {
		c.reconcileOpts = append(c.reconcileOpts, reconcile.WithAliases(classes...))
		return nil
	}
}

// WithMatchConfig configures matcher thresholds and the closeness band.
func WithMatchConfig(cfg match.Config) Option {
	return func(c *config) error {
		c.reconcileOpts = append(c.reconcileOpts, reconcile.WithMatchConfig(cfg))
		return nil
	}
}

// WithMinMatches configures how many columns must be matched before a result
// is reported as sufficient.
func WithMinMatches(n int) Option {
	return func(c *config) error {
		c.reconcileOpts = append(c.reconcileOpts, reconcile.WithMinMatches(n))
		return nil
	}
}

// WithMaxAdjustment configures the adjustment fraction above which a
// corrected column is flagged as suspect. Zero disables the flag.
func WithMaxAdjustment(fraction float64) Option {
	return func(c *config) error {
		c.reconcileOpts = append(c.reconcileOpts, reconcile.WithMaxAdjustment(fraction))
		return nil
	}
}
