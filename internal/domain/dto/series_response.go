package dto

import "github.com/guttosm/findim/internal/domain/models"

// ObservationResponse is one normalized observation. Valor is null when the
// source value could not be parsed.
type ObservationResponse struct {
	Date    string   `json:"data" example:"2023-01-01"`
	Value   *float64 `json:"valor" example:"0.53"`
	Changed bool     `json:"mudou" example:"true"`
}

// SeriesResponse is returned by GET /api/v1/series/{name}.
type SeriesResponse struct {
	Name         string                `json:"name" example:"ipca"`
	Code         int                   `json:"code" example:"433"`
	StartYear    int                   `json:"start_year" example:"2023"`
	EndYear      int                   `json:"end_year" example:"2025"`
	Changes      int                   `json:"changes" example:"12"`
	Observations []ObservationResponse `json:"observations"`
}

// NewSeriesResponse maps a normalized series to its API shape.
func NewSeriesResponse(s *models.Series, startYear, endYear int, layout string) SeriesResponse {
	out := SeriesResponse{
		Name:         s.Name,
		Code:         s.Code,
		StartYear:    startYear,
		EndYear:      endYear,
		Changes:      s.Changes(),
		Observations: make([]ObservationResponse, 0, len(s.Records)),
	}
	for _, r := range s.Records {
		o := ObservationResponse{Date: r.Date.Format(layout), Changed: r.Changed}
		if r.Valid {
			v := r.Value
			o.Value = &v
		}
		out.Observations = append(out.Observations, o)
	}
	return out
}
