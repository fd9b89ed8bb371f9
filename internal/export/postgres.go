package export

import (
	"context"
	"fmt"

	"github.com/guttosm/findim/internal/domain/models"
	"github.com/guttosm/findim/internal/storage"
)

// PostgresSink loads tables into PostgreSQL through a DimensionRepository.
type PostgresSink struct {
	repo storage.DimensionRepository
}

func NewPostgresSink(repo storage.DimensionRepository) *PostgresSink {
	return &PostgresSink{repo: repo}
}

func (*PostgresSink) Extension() string { return "" }

// WriteCalendar replaces calendar_dimension and verifies that the table holds
// exactly the rows just loaded.
func (p *PostgresSink) WriteCalendar(ctx context.Context, days []models.CalendarDay, _ string) error {
	if err := p.repo.ReplaceCalendar(ctx, days); err != nil {
		return fmt.Errorf("postgres: calendar: %w", err)
	}
	n, err := p.repo.CountCalendarDays(ctx)
	if err != nil {
		return fmt.Errorf("postgres: count calendar: %w", err)
	}
	if n != len(days) {
		return fmt.Errorf("postgres: calendar holds %d rows, loaded %d", n, len(days))
	}
	return nil
}

func (p *PostgresSink) WriteSeries(ctx context.Context, s *models.Series, _ string) error {
	if s == nil {
		return fmt.Errorf("postgres: nil series")
	}
	if err := p.repo.ReplaceSeries(ctx, s); err != nil {
		return fmt.Errorf("postgres: series %s: %w", s.Name, err)
	}
	return nil
}
