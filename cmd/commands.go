package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/guttosm/findim/config"
	"github.com/guttosm/findim/internal/calendar"
	"github.com/guttosm/findim/internal/export"
	"github.com/guttosm/findim/internal/logger"
	"github.com/guttosm/findim/internal/series"
	"github.com/guttosm/findim/internal/service"
)

func calendarCmd(cfg *config.Config) *cobra.Command {
	var start, end, out, format string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Build the date dimension (dCalendario) and export it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := pick(format, cfg.Export.Format)
			from, err := parseDateFlag("start", start, cfg.Calendar.Start)
			if err != nil {
				return err
			}
			to, err := parseDateFlag("end", end, cfg.Calendar.End)
			if err != nil {
				return err
			}

			dest, err := destination(out, cfg.Export.Dir, format, service.CalendarFileName)
			if err != nil {
				return err
			}

			a, cleanup, err := newApp(withFormat(*cfg, format))
			if err != nil {
				return err
			}
			defer cleanup()

			n, err := a.Exporter.ExportCalendar(cmd.Context(), from, to, format, dest)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "dCalendario: %d rows -> %s\n", n, describe(dest, format))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First day YYYY-MM-DD (default CALENDAR_START)")
	cmd.Flags().StringVar(&end, "end", "", "Last day YYYY-MM-DD (default CALENDAR_END)")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default EXPORT_DIR/dCalendario.<ext>)")
	cmd.Flags().StringVar(&format, "format", "", "csv|json|parquet|xlsx|sqlite|postgres (default EXPORT_FORMAT)")
	return cmd
}

func seriesCmd(cfg *config.Config) *cobra.Command {
	var startYear, endYear int
	var outDir, format string

	cmd := &cobra.Command{
		Use:       "series <ipca|selic|all>",
		Short:     "Fetch, normalize and export a BCB time series",
		Args:      cobra.ExactArgs(1),
		ValidArgs: append(series.Names(), "all"),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.ToLower(args[0])
			format := pick(format, cfg.Export.Format)
			outDir := pick(outDir, cfg.Export.Dir)
			startYear, endYear := startYear, endYear
			if startYear == 0 {
				startYear = cfg.Series.StartYear
			}
			if endYear == 0 {
				endYear = cfg.Series.EndYear
			}
			if endYear == 0 {
				endYear = time.Now().Year()
			}

			ext, err := export.ExtensionFor(format)
			if err != nil {
				return err
			}
			destFor := func(n string) string {
				if !export.IsFileFormat(format) {
					return ""
				}
				return filepath.Join(outDir, service.SeriesFileName(n, startYear, endYear, ext))
			}

			a, cleanup, err := newApp(withFormat(*cfg, format))
			if err != nil {
				return err
			}
			defer cleanup()

			var results []*service.SeriesExport
			if name == "all" {
				results, err = a.Exporter.ExportAll(cmd.Context(), startYear, endYear, format, destFor)
			} else {
				var res *service.SeriesExport
				res, err = a.Exporter.ExportSeries(cmd.Context(), name, startYear, endYear, format, destFor(name))
				if res != nil {
					results = append(results, res)
				}
			}
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintf(w, "no data for %s %d..%d\n", name, startYear, endYear)
				return nil
			}
			for _, r := range results {
				fmt.Fprintf(w, "%s changed %d times (%d rows) -> %s\n", label(r.Name), r.Changes, r.Rows, describe(r.Path, format))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&startYear, "start-year", 0, "First year (default SERIES_START_YEAR)")
	cmd.Flags().IntVar(&endYear, "end-year", 0, "Last year (default SERIES_END_YEAR or current year)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Output directory (default EXPORT_DIR)")
	cmd.Flags().StringVar(&format, "format", "", "csv|json|parquet|xlsx|sqlite|postgres (default EXPORT_FORMAT)")
	return cmd
}

func holidaysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "holidays <year>",
		Short: "Print the Brazilian national holidays of a year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("year must be an integer: %w", err)
			}
			hs, err := calendar.Holidays(year)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, h := range hs {
				fmt.Fprintf(w, "%s  %-13s  %s\n", h.Date.Format(calendar.DateLayout), calendar.WeekdayName(calendar.WeekdayOrdinal(h.Date.Weekday())), h.Name)
			}
			return nil
		},
	}
}

func apiCmd(cfg *config.Config) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "api",
		Short: "Serve the REST API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			port := pick(port, cfg.Server.Port)
			logger.L().Info().Str("port", port).Msg("starting API server")

			a, cleanup, err := newApp(*cfg)
			if err != nil {
				return fmt.Errorf("app init: %w", err)
			}

			server := startServer(a.Router(), port)
			gracefulShutdown(context.WithoutCancel(cmd.Context()), server, cleanup)
			return nil
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Port to listen on (default SERVER_PORT)")
	return cmd
}

func pick(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func parseDateFlag(name, v string, def time.Time) (time.Time, error) {
	if v == "" {
		return def, nil
	}
	t, err := time.Parse(calendar.DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: expected YYYY-MM-DD: %w", name, err)
	}
	return t, nil
}

// destination resolves the output path of a file format. Non-file formats
// return "".
func destination(out, dir, format string, defaultName func(ext string) string) (string, error) {
	ext, err := export.ExtensionFor(format)
	if err != nil {
		return "", err
	}
	if !export.IsFileFormat(format) {
		return "", nil
	}
	if out != "" {
		return out, nil
	}
	return filepath.Join(dir, defaultName(ext)), nil
}

// withFormat makes sure Postgres gets connected when the chosen format needs it.
func withFormat(cfg config.Config, format string) config.Config {
	cfg.Export.Format = strings.ToLower(format)
	return cfg
}

func describe(dest, format string) string {
	if dest == "" {
		return format
	}
	return dest
}

func label(name string) string {
	if def, err := series.Lookup(name); err == nil {
		return def.Label
	}
	return name
}
