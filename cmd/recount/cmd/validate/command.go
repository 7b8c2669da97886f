// Package validate implements the validate command: check tables and
// slates for contract violations without reconciling.
package validate

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/recount/internal/load"
)

// AppContext defines the interface the validate command needs from the app.
type AppContext interface {
	Logger() *zerolog.Logger
}

// NewCommand creates the validate command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate tables and slates without reconciling",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newTableCommand(app))
	cmd.AddCommand(newSlateCommand(app))

	return cmd
}

// newTableCommand checks CSV vote-count tables.
func newTableCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "table <table.csv> [table.csv...]",
		Short: "Validate vote-count tables",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				table, err := load.Table(path)
				if err != nil {
					return err
				}
				app.Logger().Debug().Str("table", path).Msg("table validated")
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d rows, %d columns)\n",
					path, table.Len(), table.Columns())
			}
			return nil
		},
	}
}

// newSlateCommand checks YAML candidate slates.
func newSlateCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "slate <slate.yaml> [slate.yaml...]",
		Short: "Validate candidate slates",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				slate, err := load.Slate(path)
				if err != nil {
					return err
				}
				app.Logger().Debug().Str("slate", path).Msg("slate validated")
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d candidates, %d total votes)\n",
					path, len(slate), slate.TotalVotes())
			}
			return nil
		},
	}
}
