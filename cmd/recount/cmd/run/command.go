// Package run implements the run command: reconcile one or more
// vote-count tables against a candidate slate.
package run

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/recount"
	"github.com/agentstation/recount/internal/load"
	"github.com/agentstation/recount/pkg/logging"
	"github.com/agentstation/recount/pkg/reconcile"
	"github.com/agentstation/recount/pkg/tally"
)

// AppContext defines the interface the run command needs from the app.
type AppContext interface {
	Engine() (recount.Recount, error)
	Logger() *zerolog.Logger
	OutputFormat() string
	Workers() int
}

// tableRun is one reconciled table with its source path.
type tableRun struct {
	Path   string
	Result *reconcile.Result
	Err    error
}

// NewCommand creates the run command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	var slatePath string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "run <table.csv> [table.csv...]",
		Short: "Reconcile vote-count tables against a candidate slate",
		Long: `Run reconciles one or more CSV vote-count tables against a single
YAML candidate slate. Each table is corrected independently; tables
are processed concurrently with a bounded worker pool.`,
		Example: `  recount run form20.csv --slate slate.yaml
  recount run booth-*.csv --slate slate.yaml --out corrected/
  recount run form20.csv --slate slate.yaml -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd.Context(), app, args, slatePath, outputDir)
		},
	}

	cmd.Flags().StringVarP(&slatePath, "slate", "s", "", "candidate slate YAML file (required)")
	cmd.Flags().StringVar(&outputDir, "out", "", "directory to write corrected tables to (optional)")
	_ = cmd.MarkFlagRequired("slate")

	return cmd
}

// execute reconciles every table against the slate and renders the reports.
func execute(ctx context.Context, app AppContext, paths []string, slatePath, outputDir string) error {
	slate, err := load.Slate(slatePath)
	if err != nil {
		return err
	}

	engine, err := app.Engine()
	if err != nil {
		return err
	}

	ctx = logging.WithLogger(ctx, app.Logger())

	runs := reconcileAll(ctx, engine, paths, slate, app.Workers())

	var failed int
	for _, run := range runs {
		if run.Err != nil {
			failed++
			app.Logger().Error().Err(run.Err).Str("table", run.Path).Msg("reconciliation failed")
			continue
		}
		if err := render(os.Stdout, app.OutputFormat(), run); err != nil {
			return err
		}
		if outputDir != "" {
			if err := writeCorrected(outputDir, run); err != nil {
				return err
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d tables failed", failed, len(runs))
	}
	return nil
}

// reconcileAll fans the tables out over a bounded worker pool and returns
// the runs in input order.
func reconcileAll(ctx context.Context, engine recount.Recount, paths []string, slate tally.Slate, workers int) []tableRun {
	if workers < 1 {
		workers = 1
	}

	runs := make([]tableRun, len(paths))
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			runs[i] = tableRun{Path: path}
			if err := ctx.Err(); err != nil {
				runs[i].Err = err
				return
			}

			table, err := load.Table(path)
			if err != nil {
				runs[i].Err = err
				return
			}

			result, err := engine.Reconcile(ctx, table, slate)
			if err != nil {
				runs[i].Err = err
				return
			}
			runs[i].Result = result
		}(i, path)
	}
	wg.Wait()

	return runs
}

// writeCorrected writes a run's corrected table to the output directory
// as CSV, keeping the source file name.
func writeCorrected(dir string, run tableRun) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	name := filepath.Base(run.Path)
	name = strings.TrimSuffix(name, filepath.Ext(name)) + ".corrected.csv"

	return writeTableCSV(filepath.Join(dir, name), run.Result.Corrected)
}
