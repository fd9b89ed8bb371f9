package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/guttosm/findim/internal/domain/models"
)

const (
	calendarSheet = "dCalendario"
	seriesSheet   = "serie"
)

// XLSXSink writes a single-sheet Excel workbook.
type XLSXSink struct{}

func (XLSXSink) Extension() string { return "xlsx" }

func (XLSXSink) WriteCalendar(ctx context.Context, days []models.CalendarDay, dest string) error {
	return writeXLSX(ctx, calendarTable(days), calendarSheet, dest)
}

func (XLSXSink) WriteSeries(ctx context.Context, s *models.Series, dest string) error {
	if s == nil {
		return fmt.Errorf("xlsx: nil series")
	}
	sheet := seriesSheet
	if s.Name != "" {
		sheet = s.Name
	}
	return writeXLSX(ctx, seriesTable(s.Records), sheet, dest)
}

func writeXLSX(ctx context.Context, t table, sheet, path string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("xlsx: close: %w", cerr)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("xlsx: rename sheet: %w", err)
	}

	header := make([]any, len(t.columns))
	for i, c := range t.columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsx: header: %w", err)
	}
	for i, row := range t.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx: row %d: %w", i+1, err)
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("xlsx: row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx: save: %w", err)
	}
	return nil
}
