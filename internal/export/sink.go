package export

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/guttosm/findim/internal/domain/models"
	"github.com/guttosm/findim/internal/storage"
)

// ErrUnsupportedFormat is returned by New for unknown formats.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Sink persists a date dimension or a series as a flat table.
//
// dest is a file path for file-based sinks. Database sinks write to fixed
// tables and ignore it.
type Sink interface {
	WriteCalendar(ctx context.Context, days []models.CalendarDay, dest string) error
	WriteSeries(ctx context.Context, s *models.Series, dest string) error
	Extension() string
}

// Formats lists every supported format name.
var Formats = []string{"csv", "json", "parquet", "xlsx", "sqlite", "postgres"}

// New creates a sink for the given format (csv, json, parquet, xlsx, sqlite, postgres).
// The postgres sink requires a non-nil repository.
func New(format string, repo storage.DimensionRepository) (Sink, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVSink{}, nil
	case "json":
		return JSONSink{}, nil
	case "parquet":
		return ParquetSink{}, nil
	case "xlsx":
		return XLSXSink{}, nil
	case "sqlite":
		return SQLiteSink{}, nil
	case "postgres":
		if repo == nil {
			return nil, fmt.Errorf("postgres sink: repository is required")
		}
		return NewPostgresSink(repo), nil
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
}

// IsFileFormat reports whether the format writes to a local file.
func IsFileFormat(format string) bool {
	return strings.ToLower(strings.TrimSpace(format)) != "postgres"
}

// ExtensionFor returns the file extension written by format, or "" for
// formats that do not write files.
func ExtensionFor(format string) (string, error) {
	if !IsFileFormat(format) {
		return "", nil
	}
	s, err := New(format, nil)
	if err != nil {
		return "", err
	}
	return s.Extension(), nil
}
