/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/config"
	"github.com/google/tabula/core/server"
	"github.com/google/tabula/core/tables"
	"github.com/google/tabula/core/terminal"
	"github.com/google/tabula/core/widget"
	"github.com/google/tabula/datasources"
	"github.com/google/tabula/demo"
)

// rootCmd wires the CLI surface using Cobra. Persistent flags override the
// config file and environment in config.Load.
var rootCmd = &cobra.Command{
	Use:           "tabula",
	Short:         "Sortable, searchable, paginated tables",
	Long:          "Present a dataset as a sortable, searchable, paginated table in a browser or a terminal.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var flagConfig string

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "Config file (default $TABULA_CONFIG or ~/.config/tabula/config.toml)")
	flags.Int("page-size", 10, "Rows per page, 0 disables pagination")
	flags.String("scope", "page", "Filter scope: page|dataset")
	flags.Bool("raw", false, "Insert cell values into markup without escaping")
	flags.String("source", "demo", "Data source: demo|csv|countries|sqlite")
	flags.String("dataset", "countries", "Demo dataset: countries|transactions")
	flags.String("path", "", "CSV or SQLite file for the csv and sqlite sources")
	flags.String("url", "", "Endpoint for the countries source")
	flags.String("query", "", "SELECT statement for the sqlite source")
	flags.String("log-level", "info", "Log level: debug|info|warn|error")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the table over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadCfg(cmd)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, logger)
		},
	}
	serveCmd.Flags().String("addr", "127.0.0.1:8097", "Listen address")
	serveCmd.Flags().Int("max-sessions", 1024, "Sessions kept before the least recently used is evicted")
	rootCmd.AddCommand(serveCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse the table in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadCfg(cmd)
			if err != nil {
				return err
			}
			return runTerminal(cmd.Context(), cfg, logger)
		},
	}
	rootCmd.AddCommand(tuiCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadCfg merges file, env and the command's flags, then builds the logger.
func loadCfg(cmd *cobra.Command) (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(flagConfig, cmd.Flags())
	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return config.Config{}, zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
	return cfg, logger, nil
}

// loadDataset loads the configured source and picks its columns.
func loadDataset(ctx context.Context, cfg config.Config, logger zerolog.Logger) (server.Dataset, error) {
	manager := datasources.NewManager(logger)
	manager.RegisterLoader(demo.NewLoader())
	if wd, err := os.Getwd(); err == nil {
		manager.SetBaseDir(wd)
	}

	src := datasources.Source{Name: "main", SourceType: cfg.Source.Type, Config: cfg.SourceOptions()}
	if err := manager.AddSource(src); err != nil {
		return server.Dataset{}, err
	}
	table, err := manager.LoadData(ctx, src.Name)
	if err != nil {
		return server.Dataset{}, err
	}

	var cols []columns.Column
	var title string
	switch cfg.Source.Type {
	case "demo":
		cols = demo.Columns(cfg.Source.Dataset)
		title = "Tabula: " + cfg.Source.Dataset
	case "countries":
		cols = demo.CountryColumns()
		title = "Tabula: countries"
	default:
		cols = datasources.DefaultColumns(table)
		title = "Tabula: " + cfg.Source.Path
	}
	cols, err = datasources.EnrichColumns(cols, columnAnnotations(cfg.Columns))
	if err != nil {
		return server.Dataset{}, err
	}
	return server.Dataset{Title: title, Columns: cols, Rows: table.Rows()}, nil
}

func columnAnnotations(cfgCols []config.ColumnConfig) []datasources.ColumnAnnotation {
	out := make([]datasources.ColumnAnnotation, len(cfgCols))
	for i, c := range cfgCols {
		out[i] = datasources.ColumnAnnotation{
			Key:        c.Key,
			Label:      c.Label,
			Sortable:   c.Sortable,
			Searchable: c.Searchable,
		}
	}
	return out
}

// widgetOptions translates the table section of the config.
func widgetOptions(cfg config.Config) []widget.Option {
	scope := tables.ParseFilterScope(cfg.Table.FilterScope)
	opts := []widget.Option{widget.WithPageSize(cfg.Table.PageSize), widget.WithFilterScope(scope)}
	if cfg.Table.RawCells {
		opts = append(opts, widget.WithRawCells())
	}
	return opts
}

func serve(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	dataset, err := loadDataset(ctx, cfg, logger)
	if err != nil {
		return err
	}
	srv, err := server.NewServer(dataset, logger, widgetOptions(cfg)...)
	if err != nil {
		return err
	}
	srv.SetMaxSessions(cfg.Server.MaxSessions)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown error")
		}
	}()

	logger.Info().
		Str("addr", "http://"+cfg.Server.Addr).
		Int("rows", len(dataset.Rows)).
		Msg("serving table")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}

func runTerminal(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	dataset, err := loadDataset(ctx, cfg, logger)
	if err != nil {
		return err
	}
	tw, err := widget.New(dataset.Columns, dataset.Rows, &widget.BufferMount{}, widgetOptions(cfg)...)
	if err != nil {
		return err
	}
	return terminal.Run(dataset.Title, tw)
}
