package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/guttosm/findim/config"
)

type dummyHandler struct{}

func (d dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestStartServerAndShutdown(t *testing.T) {
	srv := startServer(dummyHandler{}, "0") // random port
	if srv == nil {
		t.Fatalf("expected server")
	}

	time.Sleep(50 * time.Millisecond)

	shutdownCtx, c := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer c()
	if err := srv.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		t.Fatalf("shutdown err: %v", err)
	}
}

func TestGracefulShutdown_SignalPath(t *testing.T) {
	srv := startServer(dummyHandler{}, "0")

	cleaned := make(chan struct{}, 1)
	go func() {
		gracefulShutdown(context.Background(), srv, func() { close(cleaned) })
	}()

	// Give the goroutine time to set up signal notifications
	time.Sleep(50 * time.Millisecond)

	p, _ := os.FindProcess(os.Getpid())
	_ = p.Signal(syscall.SIGTERM)

	select {
	case <-cleaned:
	case <-time.After(2 * time.Second):
		t.Fatalf("cleanup not called after SIGTERM")
	}
}

// bcbStub answers like the SGS API for series 11 (selic) and 500 for anything else.
func bcbStub(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dados/serie/bcdata.sgs.11/dados" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"data":"03/01/2023","valor":"13.65"},{"data":"02/01/2023","valor":"13.65"},{"data":"04/01/2023","valor":"13.75"}]`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func useConfig(t *testing.T, bcbURL, dir string) {
	t.Helper()
	old := loadConfig
	loadConfig = func() config.Config {
		return config.Config{
			Server:   config.ServerConfig{Port: "8080"},
			BCB:      config.BCBConfig{BaseURL: bcbURL, Timeout: 2 * time.Second},
			Export:   config.ExportConfig{Dir: dir, Format: "csv"},
			Calendar: config.CalendarConfig{Start: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)},
			Series:   config.SeriesConfig{StartYear: 2023, EndYear: 2023},
		}
	}
	t.Cleanup(func() { loadConfig = old })
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCalendarCommand(t *testing.T) {
	dir := t.TempDir()
	useConfig(t, "http://127.0.0.1:1", dir)

	cases := []struct {
		name    string
		args    []string
		want    string
		file    string
		wantErr bool
	}{
		{name: "defaults", args: []string{"calendar"}, want: "dCalendario: 1096 rows", file: "dCalendario.csv"},
		{name: "explicit range and format", args: []string{"calendar", "--start", "2024-01-01", "--end", "2024-12-31", "--format", "json", "--out", filepath.Join(dir, "cal.json")}, want: "366 rows", file: "cal.json"},
		{name: "sqlite extension", args: []string{"calendar", "--start", "2024-01-01", "--end", "2024-01-31", "--format", "sqlite"}, want: "31 rows", file: "dCalendario.db"},
		{name: "bad date", args: []string{"calendar", "--start", "01/01/2024"}, wantErr: true},
		{name: "bad format", args: []string{"calendar", "--format", "xml"}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := run(t, tc.args...)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, output=%q", out)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if !strings.Contains(out, tc.want) {
				t.Fatalf("output %q does not contain %q", out, tc.want)
			}
			if _, err := os.Stat(filepath.Join(dir, tc.file)); err != nil {
				t.Fatalf("missing %s: %v", tc.file, err)
			}
		})
	}
}

func TestSeriesCommand(t *testing.T) {
	dir := t.TempDir()
	srv := bcbStub(t)
	useConfig(t, srv.URL, dir)

	out, err := run(t, "series", "selic")
	if err != nil {
		t.Fatalf("selic: %v", err)
	}
	if !strings.Contains(out, "Selic changed 2 times (3 rows)") {
		t.Fatalf("unexpected output %q", out)
	}
	b, err := os.ReadFile(filepath.Join(dir, "selic_2023 - 2023.csv"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if want := "data,valor,mudou\n2023-01-02,13.65,1\n2023-01-03,13.65,0\n2023-01-04,13.75,1\n"; string(b) != want {
		t.Fatalf("got %q, want %q", b, want)
	}

	out, err = run(t, "series", "ipca")
	if err != nil {
		t.Fatalf("ipca: %v", err)
	}
	if !strings.Contains(out, "no data for ipca 2023..2023") {
		t.Fatalf("unexpected output %q", out)
	}

	out, err = run(t, "series", "all", "--start-year", "2023", "--end-year", "2023")
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if strings.Count(out, "changed") != 1 {
		t.Fatalf("only selic has data, got %q", out)
	}

	if _, err := run(t, "series", "cdi"); err == nil {
		t.Fatal("unknown series must fail")
	}
	if _, err := run(t, "series"); err == nil {
		t.Fatal("missing argument must fail")
	}
}

func TestHolidaysCommand(t *testing.T) {
	useConfig(t, "http://127.0.0.1:1", t.TempDir())

	out, err := run(t, "holidays", "2024")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 12 {
		t.Fatalf("want 12 lines, got %d: %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "2024-01-01") || !strings.Contains(out, "2024-02-13") {
		t.Fatalf("unexpected output %q", out)
	}

	if _, err := run(t, "holidays", "0"); err == nil {
		t.Fatal("year 0 must fail")
	}
	if _, err := run(t, "holidays", "abc"); err == nil {
		t.Fatal("non-numeric year must fail")
	}
}
