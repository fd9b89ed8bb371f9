package main

//
//  @title           findim API
//  @version         1.0
//  @description     Brazilian date dimension, national holidays and BCB economic series (IPCA, Selic).
//  @termsOfService  https://github.com/guttosm/findim
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/findim
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        calendar
//  @tag.description Date dimension, national holidays and business days
//
//  @tag.name        series
//  @tag.description Normalized SGS time series with change flags
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/guttosm/findim/config"
	_ "github.com/guttosm/findim/docs" // swagger docs
	"github.com/guttosm/findim/internal/app"
	"github.com/guttosm/findim/internal/logger"
)

// Indirections overridden in tests.
var (
	loadConfig = func() config.Config {
		config.LoadConfig()
		return config.AppConfig
	}
	newApp = app.New
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      45 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown waits for SIGINT or SIGTERM, then shuts the server down
// and runs cleanup.
//
// Parameters:
//   - ctx (context.Context): parent context of the shutdown deadline.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Error().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// newRootCmd assembles the findim command tree.
//
// Commands:
//   - calendar: build the date dimension and export it.
//   - series:   fetch, normalize and export ipca, selic or all series.
//   - holidays: print the national holidays of a year.
//   - api:      serve the REST API.
func newRootCmd() *cobra.Command {
	var cfg config.Config

	root := &cobra.Command{
		Use:           "findim",
		Short:         "Brazilian date dimension and BCB series exporter",
		Long:          "Builds a date dimension with Brazilian national holidays and exports normalized IPCA/Selic series from the Central Bank SGS API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = loadConfig()
			logger.Init()
		},
	}

	root.AddCommand(
		calendarCmd(&cfg),
		seriesCmd(&cfg),
		holidaysCmd(),
		apiCmd(&cfg),
	)
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logger.L().Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
