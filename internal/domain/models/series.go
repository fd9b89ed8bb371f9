package models

import "time"

// SeriesRecord is one observation of an economic time series.
//
// Valid is false when the source value could not be coerced to a number;
// Value is then meaningless and exported as an empty cell.
type SeriesRecord struct {
	Date    time.Time `json:"data" example:"2024-01-01T00:00:00Z"`
	Value   float64   `json:"valor" example:"0.42"`
	Valid   bool      `json:"valido"`
	Changed bool      `json:"mudou"`
}

// Series is a normalized, chronologically sorted time series.
//
// Fields:
//   - Name: registry key (e.g., "ipca", "selic").
//   - Code: BCB SGS series code (e.g., 433).
//   - Records: observations sorted ascending by date with change flags.
type Series struct {
	Name    string         `json:"name" example:"selic"`
	Code    int            `json:"code" example:"11"`
	Records []SeriesRecord `json:"records"`
}

// Changes returns how many records are flagged as changed.
func (s *Series) Changes() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, r := range s.Records {
		if r.Changed {
			n++
		}
	}
	return n
}
