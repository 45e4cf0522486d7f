// Package report serializes prioritization results: the ranked TSV table,
// the plain-text summary, and the optional JSON and spreadsheet mirrors.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/lcvar/varprio/internal/prioritize"
	"github.com/lcvar/varprio/internal/tsv"
)

// Appended column names.
const (
	ColPriorityScore   = "PriorityScore"
	ColScoreComponents = "ScoreComponents"
	ColClassification  = "Classification"
)

// WriteTab writes the ranked table: every original column in its original
// order and value, plus the PriorityScore and ScoreComponents columns.
func WriteTab(w io.Writer, res *prioritize.Result) error {
	tw := tsv.NewWriter(w)

	header := append(append([]string{}, res.Columns...), ColPriorityScore, ColScoreComponents)
	if err := tw.WriteHeader(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, row := range res.Rows {
		err := tw.WriteRow(row.Record, strconv.Itoa(row.Score), row.Breakdown.String())
		if err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	return tw.Flush()
}
