package calendar

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/findim/internal/domain/models"
)

// DateLayout is the textual layout used for calendar dates (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ErrBuildFailed matches every *BuildError through errors.Is.
var ErrBuildFailed = errors.New("date dimension build failed")

// BuildError reports a failed date dimension build with the requested range.
type BuildError struct {
	Op    string
	Start time.Time
	End   time.Time
	Err   error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s %s..%s: %v", e.Op, e.Start.Format(DateLayout), e.End.Format(DateLayout), e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

func (e *BuildError) Is(target error) bool { return target == ErrBuildFailed }

// Build enumerates every day in [start, end] and returns one CalendarDay per day,
// IDs 1..N in ascending date order. Only the calendar day of start and end is
// considered. An inverted range yields an empty, non-nil slice.
//
// Holidays are computed once per distinct year of the range and merged by union
// before marking each day. Any failure aborts the whole build; no partial
// dimension is returned.
func Build(start, end time.Time) ([]models.CalendarDay, error) {
	start = truncateToDate(start)
	end = truncateToDate(end)

	if start.After(end) {
		return []models.CalendarDay{}, nil
	}

	holidays, err := holidaysForYears(yearsBetween(start, end))
	if err != nil {
		return nil, &BuildError{Op: "build date dimension", Start: start, End: end, Err: err}
	}

	n := int(end.Sub(start).Hours()/24) + 1
	days := make([]models.CalendarDay, 0, n)
	for d, id := start, 1; !d.After(end); d, id = d.AddDate(0, 0, 1), id+1 {
		day := NewCalendarDay(id, d)
		day.NationalHoliday = holidays.Contains(d)
		days = append(days, day)
	}

	return days, nil
}

// NewCalendarDay derives every calendar attribute of d except the holiday flag.
func NewCalendarDay(id int, d time.Time) models.CalendarDay {
	d = truncateToDate(d)
	year, month, dom := d.Date()
	m := int(month)
	wd := WeekdayOrdinal(d.Weekday())
	dim := daysInMonth(year, month)
	_, week := d.ISOWeek()

	return models.CalendarDay{
		ID:           id,
		Date:         d,
		Day:          dom,
		Month:        m,
		Year:         year,
		Quarter:      (m-1)/3 + 1,
		Bimester:     (m-1)/2 + 1,
		Weekday:      wd,
		WeekdayName:  WeekdayName(wd),
		MonthName:    MonthName(month),
		Weekend:      wd == 5 || wd == 6,
		MonthStart:   dom == 1,
		MonthEnd:     dom == dim,
		QuarterStart: dom == 1 && (m-1)%3 == 0,
		QuarterEnd:   dom == dim && m%3 == 0,
		YearStart:    dom == 1 && month == time.January,
		YearEnd:      dom == 31 && month == time.December,
		DaysInMonth:  dim,
		ISOWeek:      week,
	}
}

// yearsBetween lists each calendar year touched by [start, end], ascending.
func yearsBetween(start, end time.Time) []int {
	years := make([]int, 0, end.Year()-start.Year()+1)
	for y := start.Year(); y <= end.Year(); y++ {
		years = append(years, y)
	}
	return years
}

// holidaysForYears computes each year's holiday set concurrently and folds
// them into a single set.
func holidaysForYears(years []int) (HolidaySet, error) {
	sets := make([]HolidaySet, len(years))

	var g errgroup.Group
	for i, y := range years {
		idx, year := i, y
		g.Go(func() error {
			set, err := ComputeHolidays(year)
			if err != nil {
				return fmt.Errorf("holidays %d: %w", year, err)
			}
			sets[idx] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := HolidaySet{}
	for _, s := range sets {
		out = out.Union(s)
	}
	return out, nil
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
