// Package recount reconciles published vote-count tables against official
// per-candidate totals. It matches table columns to candidates, redistributes
// each matched column so its sum equals the official total, and reports what
// it changed and why.
package recount

import (
	"context"
	"fmt"

	"github.com/agentstation/recount/pkg/reconcile"
	"github.com/agentstation/recount/pkg/tally"
)

// Recount is the top-level entry point for tally reconciliation.
type Recount interface {
	// Reconcile corrects a table against a candidate slate and returns the
	// corrected table with a per-candidate report.
	Reconcile(ctx context.Context, table *tally.Table, slate tally.Slate) (*reconcile.Result, error)

	// Validate checks a table and slate for contract violations without
	// reconciling. Degenerate but well-formed inputs pass.
	Validate(table *tally.Table, slate tally.Slate) error
}

// recount is the internal implementation of the Recount interface.
type recount struct {
	config     *config
	reconciler reconcile.Reconciler
}

// New creates a new Recount instance with the given options.
func New(opts ...Option) (Recount, error) {
	r := &recount{
		config: defaultConfig(),
	}

	if err := r.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	reconciler, err := reconcile.New(r.config.reconcileOpts...)
	if err != nil {
		return nil, fmt.Errorf("configuring reconciler: %w", err)
	}
	r.reconciler = reconciler

	return r, nil
}

// Reconcile corrects a table against a candidate slate.
func (r *recount) Reconcile(ctx context.Context, table *tally.Table, slate tally.Slate) (*reconcile.Result, error) {
	return r.reconciler.Table(ctx, table, slate)
}

// Validate checks the inputs for contract violations.
func (r *recount) Validate(table *tally.Table, slate tally.Slate) error {
	if table != nil {
		if _, err := tally.NewTable(table.Rows()); err != nil {
			return err
		}
	}
	return slate.Validate()
}

// options applies the given options to the recount instance.
func (r *recount) options(opts ...Option) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(r.config); err != nil {
			return err
		}
	}
	return nil
}
