package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/findim/internal/domain/models"
	"github.com/guttosm/findim/internal/logger"
	"github.com/guttosm/findim/internal/metrics"
	"github.com/guttosm/findim/internal/series"
)

// ErrInvalidRange is returned when a start year is after the end year.
var ErrInvalidRange = errors.New("invalid year range")

// SeriesService fetches and normalizes economic time series.
//
// Get returns (nil, nil) when there is no data to process: the source could
// not be reached, answered with an error status, or returned no records.
type SeriesService interface {
	Get(ctx context.Context, name string, startYear, endYear int) (*models.Series, error)
	GetAll(ctx context.Context, startYear, endYear int) (map[string]*models.Series, error)
}

type seriesService struct {
	source series.Source
}

func NewSeriesService(source series.Source) SeriesService {
	return &seriesService{source: source}
}

func (s *seriesService) Get(ctx context.Context, name string, startYear, endYear int) (*models.Series, error) {
	def, err := series.Lookup(name)
	if err != nil {
		return nil, err
	}
	if startYear > endYear {
		return nil, fmt.Errorf("%s %d..%d: %w", def.Name, startYear, endYear, ErrInvalidRange)
	}

	log := logger.With("series")
	raw, err := s.source.Fetch(ctx, def.Code, startYear, endYear)
	if err != nil {
		if errors.Is(err, series.ErrSourceUnavailable) {
			metrics.SeriesFetches.WithLabelValues(def.Name, "unavailable").Inc()
			log.Warn().Err(err).Str("series", def.Name).Int("start_year", startYear).Int("end_year", endYear).Msg("source unavailable")
			return nil, nil
		}
		metrics.SeriesFetches.WithLabelValues(def.Name, "error").Inc()
		return nil, fmt.Errorf("fetch %s: %w", def.Name, err)
	}

	records, err := series.Normalize(raw)
	if err != nil {
		metrics.SeriesFetches.WithLabelValues(def.Name, "error").Inc()
		return nil, fmt.Errorf("normalize %s: %w", def.Name, err)
	}
	if records == nil {
		metrics.SeriesFetches.WithLabelValues(def.Name, "empty").Inc()
		log.Info().Str("series", def.Name).Msg("no records returned")
		return nil, nil
	}

	metrics.SeriesFetches.WithLabelValues(def.Name, "ok").Inc()
	out := &models.Series{Name: def.Name, Code: def.Code, Records: records}
	log.Info().
		Str("series", def.Name).
		Int("records", len(records)).
		Int("changes", out.Changes()).
		Msg("series normalized")
	return out, nil
}

// GetAll fetches every registered series concurrently. Series without data
// are absent from the result map.
func (s *seriesService) GetAll(ctx context.Context, startYear, endYear int) (map[string]*models.Series, error) {
	var (
		mu  sync.Mutex
		out = make(map[string]*models.Series)
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, name := range series.Names() {
		n := name
		g.Go(func() error {
			sr, err := s.Get(gctx, n, startYear, endYear)
			if err != nil {
				return err
			}
			if sr == nil {
				return nil
			}
			mu.Lock()
			out[n] = sr
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
