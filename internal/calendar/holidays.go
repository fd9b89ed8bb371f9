package calendar

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/guttosm/findim/internal/domain/models"
)

// ErrYearOutOfRange is returned when a year cannot be represented as a
// calendar year (valid years are 1..9999).
var ErrYearOutOfRange = errors.New("year out of range")

const (
	minYear = 1
	maxYear = 9999
)

// fixedHoliday is a national holiday anchored to a month/day pair.
type fixedHoliday struct {
	month time.Month
	day   int
	name  string
}

// National fixed holidays.
var fixedHolidays = []fixedHoliday{
	{time.January, 1, "Confraternização Universal"},
	{time.April, 21, "Tiradentes"},
	{time.May, 1, "Dia do Trabalho"},
	{time.September, 7, "Independência"},
	{time.October, 12, "Nossa Senhora Aparecida"},
	{time.November, 2, "Finados"},
	{time.November, 15, "Proclamação da República"},
	{time.December, 25, "Natal"},
}

// movableHoliday is a national holiday expressed as an offset in days from Easter Sunday.
type movableHoliday struct {
	offset int
	name   string
}

// Movable holidays (computed from Easter).
var movableHolidays = []movableHoliday{
	{-47, "Carnaval"},
	{-2, "Sexta-feira Santa"},
	{0, "Páscoa"},
	{60, "Corpus Christi"},
}

// HolidaySet is the set of national holiday dates, keyed by UTC midnight.
type HolidaySet map[time.Time]struct{}

// Contains reports whether the calendar day of t is in the set.
// The time-of-day and location of t are ignored.
func (s HolidaySet) Contains(t time.Time) bool {
	_, ok := s[truncateToDate(t)]
	return ok
}

// Union returns a new set holding every date of s and other.
func (s HolidaySet) Union(other HolidaySet) HolidaySet {
	out := make(HolidaySet, len(s)+len(other))
	for d := range s {
		out[d] = struct{}{}
	}
	for d := range other {
		out[d] = struct{}{}
	}
	return out
}

// ComputeHolidays returns the 12 national holiday dates of the given year:
// 8 fixed dates plus carnival, Good Friday, Easter and Corpus Christi.
func ComputeHolidays(year int) (HolidaySet, error) {
	hs, err := Holidays(year)
	if err != nil {
		return nil, err
	}
	set := make(HolidaySet, len(hs))
	for _, h := range hs {
		set[h.Date] = struct{}{}
	}
	return set, nil
}

// Holidays returns the named national holidays of the given year sorted by date.
func Holidays(year int) ([]models.Holiday, error) {
	easter, err := EasterSunday(year)
	if err != nil {
		return nil, err
	}

	out := make([]models.Holiday, 0, len(fixedHolidays)+len(movableHolidays))
	for _, f := range fixedHolidays {
		out = append(out, models.Holiday{
			Date: time.Date(year, f.month, f.day, 0, 0, 0, 0, time.UTC),
			Name: f.name,
		})
	}
	for _, m := range movableHolidays {
		out = append(out, models.Holiday{
			Date:    easter.AddDate(0, 0, m.offset),
			Name:    m.name,
			Movable: true,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// EasterSunday returns the date of Western (Gregorian) Easter Sunday for a
// given year (Meeus/Jones/Butcher algorithm), at UTC midnight.
func EasterSunday(year int) (time.Time, error) {
	if year < minYear || year > maxYear {
		return time.Time{}, fmt.Errorf("easter %d: %w", year, ErrYearOutOfRange)
	}

	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
