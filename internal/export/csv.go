package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/guttosm/findim/internal/domain/models"
)

// CSVSink writes comma-delimited files with a header row.
type CSVSink struct{}

func (CSVSink) Extension() string { return "csv" }

func (CSVSink) WriteCalendar(ctx context.Context, days []models.CalendarDay, dest string) error {
	return writeCSV(ctx, calendarTable(days), dest)
}

func (CSVSink) WriteSeries(ctx context.Context, s *models.Series, dest string) error {
	if s == nil {
		return fmt.Errorf("csv: nil series")
	}
	return writeCSV(ctx, seriesTable(s.Records), dest)
}

func writeCSV(ctx context.Context, t table, path string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("csv: close: %w", cerr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(t.columns); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	rec := make([]string, len(t.columns))
	for i, row := range t.rows {
		for j, v := range row {
			rec[j] = formatCell(v)
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("csv: write row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	return nil
}
