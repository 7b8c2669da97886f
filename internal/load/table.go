// Package load reads vote-count tables, candidate slates, and engine
// configuration from disk. It lives at the caller side of the engine:
// the reconciliation packages never touch the filesystem.
package load

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/agentstation/recount/pkg/errors"
	"github.com/agentstation/recount/pkg/tally"
)

// Table reads a vote-count table from a CSV file. The first column of each
// record is the row key (booth or precinct identifier) and the remaining
// columns are vote counts. A leading header record is detected when any of
// its count cells fails to parse as an integer; header labels of the form
// "NAME (PARTY)" carry the party in parentheses.
func Table(path string) (*tally.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	return ReadTable(f, path)
}

// ReadTable reads a vote-count table in CSV form. The source name is used
// in error messages only.
func ReadTable(r io.Reader, source string) (*tally.Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WrapParse("csv", source, err)
	}
	if len(records) == 0 {
		return tally.NewTable(nil)
	}

	var headers []tally.Header
	if isHeaderRecord(records[0]) {
		headers = parseHeaders(records[0][1:])
		records = records[1:]
	}

	rows := make([]tally.Row, 0, len(records))
	for i, record := range records {
		if len(record) == 0 {
			continue
		}
		row := tally.Row{
			Key:    strings.TrimSpace(record[0]),
			Values: make([]int64, 0, len(record)-1),
		}
		for _, cell := range record[1:] {
			v, err := strconv.ParseInt(strings.TrimSpace(cell), 10, 64)
			if err != nil {
				return nil, &errors.ParseError{
					Format:  "csv",
					File:    source,
					Line:    i + 1,
					Message: "count cell is not an integer: " + cell,
					Err:     err,
				}
			}
			row.Values = append(row.Values, v)
		}
		rows = append(rows, row)
	}

	table, err := tally.NewTable(rows)
	if err != nil {
		return nil, err
	}
	if headers != nil {
		if err := table.SetHeaders(headers); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// isHeaderRecord reports whether a record looks like a header row rather
// than a data row. Key-only records are data.
func isHeaderRecord(record []string) bool {
	if len(record) < 2 {
		return false
	}
	for _, cell := range record[1:] {
		if _, err := strconv.ParseInt(strings.TrimSpace(cell), 10, 64); err != nil {
			return true
		}
	}
	return false
}

// parseHeaders splits "NAME (PARTY)" labels into label and party parts.
func parseHeaders(cells []string) []tally.Header {
	headers := make([]tally.Header, len(cells))
	for i, cell := range cells {
		label := strings.TrimSpace(cell)
		party := ""
		if open := strings.LastIndex(label, "("); open >= 0 && strings.HasSuffix(label, ")") {
			party = strings.TrimSpace(label[open+1 : len(label)-1])
			label = strings.TrimSpace(label[:open])
		}
		headers[i] = tally.Header{Label: label, Party: party}
	}
	return headers
}
