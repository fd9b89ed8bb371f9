package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/guttosm/findim/internal/domain/models"
	"github.com/guttosm/findim/internal/export"
	"github.com/guttosm/findim/internal/logger"
	"github.com/guttosm/findim/internal/metrics"
)

// SinkFactory resolves a Sink for a format name.
type SinkFactory func(format string) (export.Sink, error)

// SeriesExport summarizes one exported series.
type SeriesExport struct {
	Name    string
	Rows    int
	Changes int
	Path    string
}

// Exporter builds tables and hands them to a sink.
type Exporter struct {
	calendar CalendarService
	series   SeriesService
	sinks    SinkFactory
}

func NewExporter(cal CalendarService, ser SeriesService, sinks SinkFactory) *Exporter {
	return &Exporter{calendar: cal, series: ser, sinks: sinks}
}

// ExportCalendar builds the date dimension for [start, end] and writes it to dest.
// It returns the number of rows written.
func (e *Exporter) ExportCalendar(ctx context.Context, start, end time.Time, format, dest string) (int, error) {
	sink, err := e.sinks(format)
	if err != nil {
		return 0, err
	}

	days, err := e.calendar.BuildDimension(ctx, start, end)
	if err != nil {
		return 0, err
	}

	if err := ensureDir(dest); err != nil {
		return 0, err
	}
	if err := sink.WriteCalendar(ctx, days, dest); err != nil {
		metrics.Exports.WithLabelValues("calendar", format, "error").Inc()
		return 0, fmt.Errorf("export calendar to %s: %w", dest, err)
	}
	metrics.Exports.WithLabelValues("calendar", format, "ok").Inc()

	log := logger.With("export")
	log.Info().
		Str("kind", "calendar").
		Str("format", format).
		Str("dest", dest).
		Int("rows", len(days)).
		Msg("table exported")
	return len(days), nil
}

// ExportSeries fetches one series and writes it to dest. A nil result with a nil
// error means the source had no data and nothing was written.
func (e *Exporter) ExportSeries(ctx context.Context, name string, startYear, endYear int, format, dest string) (*SeriesExport, error) {
	sink, err := e.sinks(format)
	if err != nil {
		return nil, err
	}

	s, err := e.series.Get(ctx, name, startYear, endYear)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	return e.write(ctx, sink, format, s, dest)
}

func (e *Exporter) write(ctx context.Context, sink export.Sink, format string, s *models.Series, dest string) (*SeriesExport, error) {
	if err := ensureDir(dest); err != nil {
		return nil, err
	}
	if err := sink.WriteSeries(ctx, s, dest); err != nil {
		metrics.Exports.WithLabelValues("series", format, "error").Inc()
		return nil, fmt.Errorf("export %s to %s: %w", s.Name, dest, err)
	}
	metrics.Exports.WithLabelValues("series", format, "ok").Inc()

	out := &SeriesExport{Name: s.Name, Rows: len(s.Records), Changes: s.Changes(), Path: dest}
	log := logger.With("export")
	log.Info().
		Str("kind", "series").
		Str("series", s.Name).
		Str("format", format).
		Str("dest", dest).
		Int("rows", out.Rows).
		Int("changes", out.Changes).
		Msg("table exported")
	return out, nil
}

// ExportAll fetches every registered series concurrently and writes each one
// to destFor(name). Series without data are skipped. Results are sorted by name.
func (e *Exporter) ExportAll(ctx context.Context, startYear, endYear int, format string, destFor func(name string) string) ([]*SeriesExport, error) {
	sink, err := e.sinks(format)
	if err != nil {
		return nil, err
	}

	all, err := e.series.GetAll(ctx, startYear, endYear)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(all))
	for n := range all {
		names = append(names, n)
	}
	sort.Strings(names)

	out := make([]*SeriesExport, 0, len(names))
	for _, n := range names {
		res, err := e.write(ctx, sink, format, all[n], destFor(n))
		if err != nil {
			return out, err
		}
		out = append(out, res)
	}
	return out, nil
}

// CalendarFileName returns the default output file name for the date dimension.
func CalendarFileName(ext string) string {
	return withExt("dCalendario", ext)
}

// SeriesFileName returns the default output file name for a series export.
func SeriesFileName(name string, startYear, endYear int, ext string) string {
	return withExt(fmt.Sprintf("%s_%d - %d", name, startYear, endYear), ext)
}

// ensureDir creates the parent directory of a file destination.
func ensureDir(dest string) error {
	if dest == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return nil
}

func withExt(base, ext string) string {
	if ext == "" {
		return base
	}
	return base + "." + ext
}
