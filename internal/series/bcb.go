package series

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL   = "https://api.bcb.gov.br"
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "findim/1.0"
	seriesPath       = "/dados/serie/bcdata.sgs.{code}/dados"
)

// BCBConfig configures the BCB SGS client.
type BCBConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// BCBSource fetches series from the Banco Central do Brasil SGS API.
// Requests are never retried: a failure is reported to the caller.
type BCBSource struct {
	client *resty.Client
}

// NewBCBSource builds a source with defaults applied to empty fields.
func NewBCBSource(cfg BCBConfig) *BCBSource {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", cfg.UserAgent)

	return &BCBSource{client: client}
}

// Fetch requests the observations of series code between 01/01/startYear and 31/12/endYear.
func (s *BCBSource) Fetch(ctx context.Context, code, startYear, endYear int) ([]RawRecord, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetPathParam("code", strconv.Itoa(code)).
		SetQueryParams(map[string]string{
			"formato":     "json",
			"dataInicial": fmt.Sprintf("01/01/%d", startYear),
			"dataFinal":   fmt.Sprintf("31/12/%d", endYear),
		}).
		Get(seriesPath)
	if err != nil {
		return nil, fmt.Errorf("sgs %d: %v: %w", code, err, ErrSourceUnavailable)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("sgs %d: status %d: %w", code, resp.StatusCode(), ErrSourceUnavailable)
	}

	var out []RawRecord
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("sgs %d: decode response: %v: %w", code, err, ErrSourceUnavailable)
	}
	return out, nil
}
