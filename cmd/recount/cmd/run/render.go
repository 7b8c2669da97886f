package run

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/agentstation/recount/pkg/reconcile"
	"github.com/agentstation/recount/pkg/tally"
)

// render writes one run's report to w in the requested format.
func render(w io.Writer, format string, run tableRun) error {
	switch format {
	case "json":
		return renderJSON(w, run)
	default:
		return renderTable(w, run)
	}
}

// jsonReport is the machine-readable shape of one run.
type jsonReport struct {
	Table            string                      `json:"table"`
	RunID            string                      `json:"run_id"`
	Summary          string                      `json:"summary"`
	Sufficient       bool                        `json:"sufficient"`
	Candidates       []reconcile.CandidateReport `json:"candidates"`
	UnmatchedColumns []int                       `json:"unmatched_columns,omitempty"`
	Corrected        []tally.Row                 `json:"corrected"`
	Stats            reconcile.ResultStatistics  `json:"stats"`
}

func renderJSON(w io.Writer, run tableRun) error {
	report := jsonReport{
		Table:            run.Path,
		RunID:            run.Result.Metadata.RunID,
		Summary:          run.Result.Summary(),
		Sufficient:       run.Result.Sufficient,
		Candidates:       run.Result.Candidates,
		UnmatchedColumns: run.Result.UnmatchedColumns,
		Corrected:        run.Result.Corrected.Rows(),
		Stats:            run.Result.Metadata.Stats,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func renderTable(w io.Writer, run tableRun) error {
	fmt.Fprintf(w, "%s: %s\n", run.Path, run.Result.Summary())

	table := tablewriter.NewTable(w)
	table.Header("Candidate", "Party", "Method", "Column", "Raw", "Corrected", "Error %", "Rows", "Flags")

	for _, report := range run.Result.Candidates {
		column := "-"
		if report.Matched {
			column = strconv.Itoa(report.Column)
		}
		flags := ""
		if report.Suspect {
			flags = "suspect"
		}
		if err := table.Append(
			report.Candidate.Name,
			report.Candidate.Party,
			report.Method.String(),
			column,
			strconv.FormatInt(report.RawSum, 10),
			strconv.FormatInt(report.CorrectedSum, 10),
			fmt.Sprintf("%.2f", report.PercentError),
			strconv.Itoa(report.RowsTouched),
			flags,
		); err != nil {
			return err
		}
	}

	if err := table.Render(); err != nil {
		return err
	}

	if len(run.Result.UnmatchedColumns) > 0 {
		fmt.Fprintf(w, "Unmatched columns: %v\n", run.Result.UnmatchedColumns)
	}
	fmt.Fprintln(w)
	return nil
}

// writeTableCSV writes a corrected table as CSV, one record per row with
// the row key first.
func writeTableCSV(path string, table *tally.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	for _, row := range table.Rows() {
		record := make([]string, 0, len(row.Values)+1)
		record = append(record, row.Key)
		for _, v := range row.Values {
			record = append(record, strconv.FormatInt(v, 10))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
