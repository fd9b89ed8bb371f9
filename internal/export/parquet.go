package export

import (
	"context"
	"fmt"

	"github.com/parquet-go/parquet-go"

	"github.com/guttosm/findim/internal/domain/models"
)

// ParquetSink writes Parquet files; missing series values are null.
type ParquetSink struct{}

func (ParquetSink) Extension() string { return "parquet" }

func (ParquetSink) WriteCalendar(ctx context.Context, days []models.CalendarDay, dest string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := parquet.WriteFile(dest, calendarRows(days)); err != nil {
		return fmt.Errorf("parquet: %w", err)
	}
	return nil
}

func (ParquetSink) WriteSeries(ctx context.Context, s *models.Series, dest string) error {
	if s == nil {
		return fmt.Errorf("parquet: nil series")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := parquet.WriteFile(dest, seriesRows(s.Records)); err != nil {
		return fmt.Errorf("parquet: %w", err)
	}
	return nil
}
