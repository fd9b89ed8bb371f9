package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/guttosm/findim/internal/domain/models"
)

// JSONSink writes an indented JSON array of row objects.
type JSONSink struct{}

func (JSONSink) Extension() string { return "json" }

func (JSONSink) WriteCalendar(ctx context.Context, days []models.CalendarDay, dest string) error {
	return writeJSON(ctx, calendarRows(days), dest)
}

func (JSONSink) WriteSeries(ctx context.Context, s *models.Series, dest string) error {
	if s == nil {
		return fmt.Errorf("json: nil series")
	}
	return writeJSON(ctx, seriesRows(s.Records), dest)
}

func writeJSON(ctx context.Context, v any, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("json: write: %w", err)
	}
	return nil
}
