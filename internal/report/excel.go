package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/lcvar/varprio/internal/prioritize"
)

// WriteExcel writes the spreadsheet mirror: the identical ranked row set
// with the score, component breakdown and classification appended.
func WriteExcel(path string, res *prioritize.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]any, 0, len(res.Columns)+3)
	for _, col := range res.Columns {
		header = append(header, col)
	}
	header = append(header, ColPriorityScore, ColScoreComponents, ColClassification)
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write sheet header: %w", err)
	}

	for i, row := range res.Rows {
		cells := make([]any, 0, len(res.Columns)+3)
		for j := range res.Columns {
			cells = append(cells, row.Record.Value(j))
		}
		cells = append(cells, row.Score, row.Breakdown.String(), string(row.Classification))

		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell address: %w", err)
		}
		if err := f.SetSheetRow(sheet, addr, &cells); err != nil {
			return fmt.Errorf("write sheet row: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save spreadsheet: %w", err)
	}
	return nil
}
