package series

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/findim/internal/domain/models"
)

// ObservationDateLayout is the BCB SGS date format (DD/MM/YYYY).
const ObservationDateLayout = "02/01/2006"

// ErrInvalidDate is returned when an observation date cannot be parsed.
var ErrInvalidDate = errors.New("invalid observation date")

// RawRecord is one observation as returned by the SGS JSON API.
type RawRecord struct {
	Date  string `json:"data"`
	Value string `json:"valor"`
}

// Normalize parses raw observations, sorts them ascending by date and flags
// each record whose value differs from the previous one.
//
// Behavior:
//   - Empty or nil input returns (nil, nil): there is nothing to process.
//   - Values that are not numeric are kept with Valid=false.
//   - The first record is always flagged as changed.
//   - A record next to an invalid value is always flagged as changed.
//   - An unparsable date fails the whole batch.
func Normalize(raw []RawRecord) ([]models.SeriesRecord, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	parsed := make([]observation, 0, len(raw))
	for i, r := range raw {
		d, err := time.Parse(ObservationDateLayout, strings.TrimSpace(r.Date))
		if err != nil {
			return nil, fmt.Errorf("record %d %q: %w", i, r.Date, ErrInvalidDate)
		}
		v, ok := parseValue(r.Value)
		parsed = append(parsed, observation{date: d, value: v, valid: ok})
	}

	sort.SliceStable(parsed, func(i, j int) bool { return parsed[i].date.Before(parsed[j].date) })

	out := make([]models.SeriesRecord, len(parsed))
	for i, o := range parsed {
		rec := models.SeriesRecord{Date: o.date, Valid: o.valid}
		if o.valid {
			rec.Value = o.value.InexactFloat64()
		}
		if i == 0 {
			rec.Changed = true
		} else {
			prev := parsed[i-1]
			rec.Changed = !(prev.valid && o.valid && prev.value.Equal(o.value))
		}
		out[i] = rec
	}

	return out, nil
}

// observation keeps the exact decimal value so "0.50" and "0.5" compare equal
// without binary rounding.
type observation struct {
	date  time.Time
	value decimal.Decimal
	valid bool
}

// parseValue coerces a textual decimal; anything non-numeric is reported as missing.
func parseValue(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}
