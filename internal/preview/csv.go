package preview

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// CSVPreviewer handles CSV payloads, rendering them as an aligned table.
type CSVPreviewer struct{}

// maxCSVRows bounds the preview; resources are previews, not exports.
const maxCSVRows = 500

func (p *CSVPreviewer) Preview(r io.Reader, name string) (*Preview, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)

	rows := 0
	truncated := false
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		if rows >= maxCSVRows {
			truncated = true
			break
		}
		fmt.Fprintln(tw, strings.Join(record, "\t"))
		rows++
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}
	if truncated {
		fmt.Fprintf(&sb, "... (truncated at %d rows)\n", maxCSVRows)
	}

	return &Preview{
		Title:    titleFor(name),
		Text:     sb.String(),
		Language: "csv",
	}, nil
}
