// Package xlsxexport writes segment summaries as an Excel workbook.
package xlsxexport

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"birmerge/internal/csvexport"
	"birmerge/internal/domain"
)

// SheetName is the worksheet holding the segment rows.
const SheetName = "Segments"

// Report writes segment summaries to an .xlsx file. It implements
// port.ReportWriter.
type Report struct{}

// NewReport creates an XLSX Report.
func NewReport() *Report {
	return &Report{}
}

func (r *Report) Suffix() string {
	return "_segments.xlsx"
}

func (r *Report) Write(path string, segments []domain.SegmentSummary) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(csvexport.Columns))
	for i, c := range csvexport.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(csvexport.Columns))
	if err != nil {
		return fmt.Errorf("header range: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i := range segments {
		row := csvexport.Row(&segments[i])
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cells[0] = segments[i].Index

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: saving %s: %w", domain.ErrFileIO, path, err)
	}
	return nil
}
