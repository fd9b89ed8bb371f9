package service

import (
	"context"
	"time"

	"github.com/guttosm/findim/internal/calendar"
	"github.com/guttosm/findim/internal/domain/models"
	"github.com/guttosm/findim/internal/logger"
	"github.com/guttosm/findim/internal/metrics"
)

// CalendarService exposes date dimension and holiday operations.
type CalendarService interface {
	BuildDimension(ctx context.Context, start, end time.Time) ([]models.CalendarDay, error)
	Holidays(ctx context.Context, year int) ([]models.Holiday, error)
	LastBusinessDays(ctx context.Context, n int, from time.Time) ([]time.Time, error)
}

type calendarService struct{}

func NewCalendarService() CalendarService {
	return &calendarService{}
}

// BuildDimension builds the date dimension for [start, end] and logs the outcome.
func (s *calendarService) BuildDimension(ctx context.Context, start, end time.Time) ([]models.CalendarDay, error) {
	log := logger.With("calendar")
	began := time.Now()

	log.Info().
		Str("op", "build_dimension").
		Str("start", start.Format(calendar.DateLayout)).
		Str("end", end.Format(calendar.DateLayout)).
		Msg("building date dimension")

	days, err := calendar.Build(start, end)
	metrics.ObserveBuild(began, err)
	if err != nil {
		log.Error().Err(err).Str("op", "build_dimension").Msg("date dimension build failed")
		return nil, err
	}

	log.Info().
		Str("op", "build_dimension").
		Int("rows", len(days)).
		Dur("elapsed", time.Since(began)).
		Msg("date dimension built")
	return days, nil
}

func (s *calendarService) Holidays(_ context.Context, year int) ([]models.Holiday, error) {
	return calendar.Holidays(year)
}

func (s *calendarService) LastBusinessDays(_ context.Context, n int, from time.Time) ([]time.Time, error) {
	return calendar.LastNBusinessDays(n, from)
}
