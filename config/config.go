package config

import (
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/guttosm/findim/internal/export"
)

// DateLayout is the layout of CALENDAR_START / CALENDAR_END.
const DateLayout = "2006-01-02"

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV:
//
//	SERVER_PORT=8080
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=postgres
//	POSTGRES_PASSWORD=postgres
//	POSTGRES_DB=findim
//	POSTGRES_SSLMODE=disable
//	BCB_BASE_URL=https://api.bcb.gov.br
//	BCB_TIMEOUT=30s
//	EXPORT_DIR=.
//	EXPORT_FORMAT=csv
//	CALENDAR_START=2023-01-01
//	CALENDAR_END=2025-12-31
//	SERIES_START_YEAR=2023
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Postgres PostgresConfig // PostgreSQL connection settings
	BCB      BCBConfig      // Central Bank SGS API
	Export   ExportConfig   // where and how tables are written
	Calendar CalendarConfig // default date dimension range
	Series   SeriesConfig   // default series window
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string        // TCP port the HTTP server listens on (e.g., "8080")
	RequestTimeout time.Duration // per-request deadline
	RateLimit      int           // requests per minute per client IP, 0 disables
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Postgres is optional: it is only connected when Enabled is set or the
// export format is "postgres".
type PostgresConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// BCBConfig points at the SGS time series API.
type BCBConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ExportConfig selects the table sink.
type ExportConfig struct {
	Dir    string
	Format string // csv|json|parquet|xlsx|sqlite|postgres
}

// CalendarConfig is the default range of the date dimension.
type CalendarConfig struct {
	Start time.Time
	End   time.Time
}

// SeriesConfig is the default year window of series exports. EndYear 0 means
// the current year.
type SeriesConfig struct {
	StartYear int
	EndYear   int
}

// PostgresEnabled reports whether a PostgreSQL connection is required.
func (c Config) PostgresEnabled() bool {
	return c.Postgres.Enabled || c.Export.Format == "postgres"
}

// AppConfig is the globally accessible configuration instance, populated once
// by LoadConfig.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or malformed, validateConfig() terminates
//     the app with a descriptive log message.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_REQUEST_TIMEOUT", "30s")
	viper.SetDefault("SERVER_RATE_LIMIT", 60)

	viper.SetDefault("POSTGRES_ENABLED", false)
	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "findim")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("BCB_BASE_URL", "https://api.bcb.gov.br")
	viper.SetDefault("BCB_TIMEOUT", "30s")

	viper.SetDefault("EXPORT_DIR", ".")
	viper.SetDefault("EXPORT_FORMAT", "csv")

	viper.SetDefault("CALENDAR_START", "2023-01-01")
	viper.SetDefault("CALENDAR_END", "2025-12-31")
	viper.SetDefault("SERIES_START_YEAR", 2023)
	viper.SetDefault("SERIES_END_YEAR", 0)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			RequestTimeout: viper.GetDuration("SERVER_REQUEST_TIMEOUT"),
			RateLimit:      viper.GetInt("SERVER_RATE_LIMIT"),
		},
		Postgres: PostgresConfig{
			Enabled:  viper.GetBool("POSTGRES_ENABLED"),
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		BCB: BCBConfig{
			BaseURL: strings.TrimRight(viper.GetString("BCB_BASE_URL"), "/"),
			Timeout: viper.GetDuration("BCB_TIMEOUT"),
		},
		Export: ExportConfig{
			Dir:    viper.GetString("EXPORT_DIR"),
			Format: strings.ToLower(viper.GetString("EXPORT_FORMAT")),
		},
		Series: SeriesConfig{
			StartYear: viper.GetInt("SERIES_START_YEAR"),
			EndYear:   viper.GetInt("SERIES_END_YEAR"),
		},
	}

	// Unparsable dates stay zero and are reported by validateConfig.
	AppConfig.Calendar.Start, _ = time.Parse(DateLayout, viper.GetString("CALENDAR_START"))
	AppConfig.Calendar.End, _ = time.Parse(DateLayout, viper.GetString("CALENDAR_END"))

	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	validateConfig()
}

// validateConfig terminates the application with log.Fatalf when required
// variables are missing or malformed.
func validateConfig() {
	if problems := AppConfig.problems(); len(problems) > 0 {
		log.Fatalf("❌ Invalid or missing environment variables: %v\n", problems)
	}
}

// problems lists every invalid or missing key. Postgres keys are only
// required when Postgres is enabled.
func (c Config) problems() []string {
	var missing []string

	if c.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if c.PostgresEnabled() {
		if c.Postgres.Host == "" {
			missing = append(missing, "POSTGRES_HOST")
		}
		if c.Postgres.Port == 0 {
			missing = append(missing, "POSTGRES_PORT")
		}
		if c.Postgres.User == "" {
			missing = append(missing, "POSTGRES_USER")
		}
		if c.Postgres.Password == "" {
			missing = append(missing, "POSTGRES_PASSWORD")
		}
		if c.Postgres.DBName == "" {
			missing = append(missing, "POSTGRES_DB")
		}
	}
	if c.BCB.BaseURL == "" {
		missing = append(missing, "BCB_BASE_URL")
	}
	if c.BCB.Timeout <= 0 {
		missing = append(missing, "BCB_TIMEOUT")
	}
	if !slices.Contains(export.Formats, c.Export.Format) {
		missing = append(missing, "EXPORT_FORMAT")
	}
	if c.Export.Dir == "" {
		missing = append(missing, "EXPORT_DIR")
	}
	if c.Calendar.Start.IsZero() {
		missing = append(missing, "CALENDAR_START")
	}
	if c.Calendar.End.IsZero() {
		missing = append(missing, "CALENDAR_END")
	}
	if c.Series.StartYear < 1 || c.Series.StartYear > 9999 {
		missing = append(missing, "SERIES_START_YEAR")
	}

	return missing
}
