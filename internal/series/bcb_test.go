package series

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestBCBSource_Fetch(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"data":"01/01/2023","valor":"0.53"},{"data":"01/02/2023","valor":"0.84"}]`))
	}))
	defer srv.Close()

	src := NewBCBSource(BCBConfig{BaseURL: srv.URL, Timeout: time.Second})
	out, err := src.Fetch(context.Background(), 433, 2023, 2024)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 2 || out[1].Value != "0.84" || out[0].Date != "01/01/2023" {
		t.Fatalf("unexpected records: %+v", out)
	}
	if gotPath != "/dados/serie/bcdata.sgs.433/dados" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	for _, want := range []string{"formato=json", "dataInicial=01%2F01%2F2023", "dataFinal=31%2F12%2F2024"} {
		if !strings.Contains(gotQuery, want) {
			t.Fatalf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestBCBSource_Failures(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) }},
		{"not found", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNotFound) }},
		{"bad payload", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(`{"erro":"x"`)) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()
			src := NewBCBSource(BCBConfig{BaseURL: srv.URL, Timeout: time.Second})
			if _, err := src.Fetch(context.Background(), 11, 2023, 2023); !errors.Is(err, ErrSourceUnavailable) {
				t.Fatalf("want ErrSourceUnavailable, got %v", err)
			}
		})
	}
}

func TestBCBSource_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	src := NewBCBSource(BCBConfig{BaseURL: url, Timeout: 200 * time.Millisecond})
	if _, err := src.Fetch(context.Background(), 11, 2023, 2023); !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("want ErrSourceUnavailable, got %v", err)
	}
}

func TestLookup(t *testing.T) {
	def, err := Lookup(" IPCA ")
	if err != nil || def.Code != 433 {
		t.Fatalf("unexpected def=%+v err=%v", def, err)
	}
	if _, err := Lookup("cdi"); !errors.Is(err, ErrUnknownSeries) {
		t.Fatalf("want ErrUnknownSeries, got %v", err)
	}
	if names := Names(); len(names) != 2 || names[0] != "ipca" || names[1] != "selic" {
		t.Fatalf("unexpected names %v", names)
	}
}
