package export

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"

	"github.com/guttosm/findim/internal/calendar"
	"github.com/guttosm/findim/internal/domain/models"
)

func sampleCalendar(t *testing.T) []models.CalendarDay {
	t.Helper()
	days, err := calendar.Build(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return days
}

func sampleSeries() *models.Series {
	return &models.Series{Name: "ipca", Code: 433, Records: []models.SeriesRecord{
		{Date: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), Value: 0.53, Valid: true, Changed: true},
		{Date: time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), Value: 0.53, Valid: true},
		{Date: time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC), Changed: true},
	}}
}

func TestNew_Formats(t *testing.T) {
	cases := []struct {
		format  string
		wantExt string
		wantErr bool
	}{
		{"csv", "csv", false},
		{" JSON ", "json", false},
		{"parquet", "parquet", false},
		{"xlsx", "xlsx", false},
		{"sqlite", "db", false},
		{"postgres", "", true}, // repository required
		{"xml", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.format, func(t *testing.T) {
			s, err := New(tc.format, nil)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil || s.Extension() != tc.wantExt {
				t.Fatalf("sink=%v err=%v", s, err)
			}
		})
	}
	if _, err := New("xml", nil); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("want ErrUnsupportedFormat, got %v", err)
	}
	if s, err := New("postgres", &fakeRepo{}); err != nil || s == nil {
		t.Fatalf("postgres sink with repo: %v", err)
	}
	if IsFileFormat("postgres") || !IsFileFormat("csv") {
		t.Fatal("unexpected IsFileFormat result")
	}
}

func TestExtensionFor(t *testing.T) {
	cases := map[string]string{"csv": "csv", "sqlite": "db", "postgres": "", "Parquet": "parquet"}
	for format, want := range cases {
		if got, err := ExtensionFor(format); err != nil || got != want {
			t.Fatalf("%s: got %q err=%v, want %q", format, got, err, want)
		}
	}
	if _, err := ExtensionFor("xml"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("want ErrUnsupportedFormat, got %v", err)
	}
}

func TestCSVSink_Calendar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dCalendario.csv")
	if err := (CSVSink{}).WriteCalendar(context.Background(), sampleCalendar(t), path); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines=%d, want 4", len(lines))
	}
	if lines[0] != strings.Join(CalendarColumns, ",") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	want := "1,2024-01-01,1,1,2024,1,1,0,Segunda-feira,Janeiro,False,True,False,True,False,True,False,31,1,True"
	if lines[1] != want {
		t.Fatalf("row 1:\n got %q\nwant %q", lines[1], want)
	}
}

func TestCSVSink_Series(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ipca.csv")
	if err := (CSVSink{}).WriteSeries(context.Background(), sampleSeries(), path); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, _ := os.ReadFile(path)
	want := "data,valor,mudou\n2023-01-01,0.53,1\n2023-02-01,0.53,0\n2023-03-01,,1\n"
	if string(b) != want {
		t.Fatalf("got %q, want %q", string(b), want)
	}
	if err := (CSVSink{}).WriteSeries(context.Background(), nil, path); err == nil {
		t.Fatal("expected error for nil series")
	}
}

func TestCSVSink_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path := filepath.Join(t.TempDir(), "x.csv")
	if err := (CSVSink{}).WriteCalendar(ctx, nil, path); err == nil {
		t.Fatal("expected context error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("no file should be created on canceled context")
	}
}

func TestJSONSink_Series(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ipca.json")
	if err := (JSONSink{}).WriteSeries(context.Background(), sampleSeries(), path); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, _ := os.ReadFile(path)
	s := string(b)
	if !strings.Contains(s, `"valor": null`) || !strings.Contains(s, `"mudou": 1`) {
		t.Fatalf("unexpected json: %s", s)
	}
}

func TestParquetSink_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cal := filepath.Join(dir, "dCalendario.parquet")
	if err := (ParquetSink{}).WriteCalendar(context.Background(), sampleCalendar(t), cal); err != nil {
		t.Fatalf("write calendar: %v", err)
	}
	rows, err := parquet.ReadFile[calendarRow](cal)
	if err != nil {
		t.Fatalf("read calendar: %v", err)
	}
	if len(rows) != 3 || rows[0].Date != "2024-01-01" || !rows[0].NationalHoliday || rows[2].ID != 3 {
		t.Fatalf("unexpected rows: %+v", rows)
	}

	ser := filepath.Join(dir, "ipca.parquet")
	if err := (ParquetSink{}).WriteSeries(context.Background(), sampleSeries(), ser); err != nil {
		t.Fatalf("write series: %v", err)
	}
	srows, err := parquet.ReadFile[seriesRow](ser)
	if err != nil {
		t.Fatalf("read series: %v", err)
	}
	if len(srows) != 3 || srows[2].Value != nil || srows[0].Value == nil || *srows[0].Value != 0.53 {
		t.Fatalf("unexpected series rows: %+v", srows)
	}
}

func TestXLSXSink_Calendar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dCalendario.xlsx")
	if err := (XLSXSink{}).WriteCalendar(context.Background(), sampleCalendar(t), path); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows(calendarSheet)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 4 || rows[0][0] != "id_data" || rows[1][1] != "2024-01-01" || rows[1][8] != "Segunda-feira" {
		t.Fatalf("unexpected rows: %v", rows)
	}
}

func TestXLSXSink_SeriesSheetName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ipca.xlsx")
	if err := (XLSXSink{}).WriteSeries(context.Background(), sampleSeries(), path); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = f.Close() }()
	if name := f.GetSheetName(0); name != "ipca" {
		t.Fatalf("sheet=%q, want ipca", name)
	}
}

func TestSQLiteSink_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "findim.db")
	ctx := context.Background()
	sink := SQLiteSink{}

	// writing twice replaces the table
	for i := 0; i < 2; i++ {
		if err := sink.WriteCalendar(ctx, sampleCalendar(t), path); err != nil {
			t.Fatalf("write calendar #%d: %v", i+1, err)
		}
	}
	if err := sink.WriteSeries(ctx, sampleSeries(), path); err != nil {
		t.Fatalf("write series: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	var n, holidays int
	if err := db.QueryRow(`SELECT COUNT(*), SUM(feriado_nacional) FROM dcalendario`).Scan(&n, &holidays); err != nil {
		t.Fatalf("query calendar: %v", err)
	}
	if n != 3 || holidays != 1 {
		t.Fatalf("rows=%d holidays=%d", n, holidays)
	}

	var nulls int
	if err := db.QueryRow(`SELECT COUNT(*) FROM serie_ipca WHERE valor IS NULL`).Scan(&nulls); err != nil {
		t.Fatalf("query series: %v", err)
	}
	if nulls != 1 {
		t.Fatalf("nulls=%d, want 1", nulls)
	}
}

func TestSeriesSinks_DuplicateDates(t *testing.T) {
	day := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &models.Series{Name: "selic", Code: 11, Records: []models.SeriesRecord{
		{Date: day, Value: 1, Valid: true, Changed: true},
		{Date: day, Value: 2, Valid: true, Changed: true},
	}}

	for _, format := range []string{"csv", "json", "parquet", "xlsx", "sqlite"} {
		t.Run(format, func(t *testing.T) {
			sink, err := New(format, nil)
			if err != nil {
				t.Fatalf("new: %v", err)
			}
			path := filepath.Join(t.TempDir(), "selic."+sink.Extension())
			if err := sink.WriteSeries(context.Background(), s, path); err != nil {
				t.Fatalf("write: %v", err)
			}
		})
	}

	path := filepath.Join(t.TempDir(), "selic.db")
	if err := (SQLiteSink{}).WriteSeries(context.Background(), s, path); err != nil {
		t.Fatalf("write: %v", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM serie_selic WHERE data = ?`, "2023-01-01").Scan(&n); err != nil {
		t.Fatalf("query: %v", err)
	}
	if n != 2 {
		t.Fatalf("rows=%d, want 2", n)
	}
}

func TestSQLiteSeriesTable_Sanitized(t *testing.T) {
	if got := sqliteSeriesTable("IPCA; DROP"); got != "serie_ipcadrop" {
		t.Fatalf("got %q", got)
	}
}

type fakeRepo struct {
	days     int
	series   *models.Series
	err      error
	count    int
	countErr error
	counted  bool
}

func (f *fakeRepo) ReplaceCalendar(_ context.Context, days []models.CalendarDay) error {
	f.days = len(days)
	return f.err
}
func (f *fakeRepo) ReplaceSeries(_ context.Context, s *models.Series) error {
	f.series = s
	return f.err
}
func (f *fakeRepo) CountCalendarDays(context.Context) (int, error) {
	if f.counted {
		return f.count, f.countErr
	}
	return f.days, f.countErr
}
func (f *fakeRepo) Ping(context.Context) error { return nil }

func TestPostgresSink_DelegatesToRepo(t *testing.T) {
	repo := &fakeRepo{}
	sink := NewPostgresSink(repo)
	if err := sink.WriteCalendar(context.Background(), sampleCalendar(t), ""); err != nil || repo.days != 3 {
		t.Fatalf("calendar: days=%d err=%v", repo.days, err)
	}
	if err := sink.WriteSeries(context.Background(), sampleSeries(), ""); err != nil || repo.series == nil {
		t.Fatalf("series: err=%v", err)
	}

	repo.err = errors.New("db down")
	if err := sink.WriteCalendar(context.Background(), nil, ""); err == nil {
		t.Fatal("expected error")
	}
}

func TestPostgresSink_VerifiesCalendarCount(t *testing.T) {
	cases := []struct {
		name string
		repo *fakeRepo
	}{
		{name: "count mismatch", repo: &fakeRepo{counted: true, count: 1}},
		{name: "count error", repo: &fakeRepo{countErr: errors.New("timeout")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := NewPostgresSink(tc.repo).WriteCalendar(context.Background(), sampleCalendar(t), ""); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestFormats_AllConstructible(t *testing.T) {
	for _, f := range Formats {
		if _, err := New(f, &fakeRepo{}); err != nil {
			t.Fatalf("New(%q): %v", f, err)
		}
	}
}
