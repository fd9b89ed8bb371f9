package series

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrSourceUnavailable is returned when the time series source cannot be
// reached or answers with a non-success status.
var ErrSourceUnavailable = errors.New("time series source unavailable")

// ErrUnknownSeries is returned when a series name is not registered.
var ErrUnknownSeries = errors.New("unknown series")

// Source fetches raw observations of a series for whole calendar years
// [startYear, endYear].
type Source interface {
	Fetch(ctx context.Context, code, startYear, endYear int) ([]RawRecord, error)
}

// Definition identifies a series published by the BCB SGS API.
type Definition struct {
	Name  string // registry key, also used for output file names
	Code  int    // SGS series code
	Label string // human readable label used in reports
}

var registry = map[string]Definition{
	"ipca":  {Name: "ipca", Code: 433, Label: "IPCA"},
	"selic": {Name: "selic", Code: 11, Label: "Selic"},
}

// Lookup returns the definition registered under name (case-insensitive).
func Lookup(name string) (Definition, error) {
	def, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Definition{}, fmt.Errorf("%q: %w", name, ErrUnknownSeries)
	}
	return def, nil
}

// Names returns every registered series name, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
