package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LinFrancis/escuela-aucca/internal/config"
	"github.com/LinFrancis/escuela-aucca/internal/exporter"
	"github.com/LinFrancis/escuela-aucca/internal/infrastructure"
	"github.com/LinFrancis/escuela-aucca/internal/services"
	"github.com/LinFrancis/escuela-aucca/internal/source"
	"github.com/LinFrancis/escuela-aucca/internal/survey"
)

type reportOptions struct {
	file     string
	url      string
	xlsx     string
	json     bool
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report [taller]",
		Short: "Print the participant dashboard of a workshop",
		Long: `Loads the survey responses once, runs the dashboard pipeline and prints
every section. The workshop argument is a number from the catalog or
"todos" for all workshops; it defaults to the first workshop.

Examples:
  report 3 --file respuestas.xlsx
  report todos --url https://docs.google.com/spreadsheets/d/<id>/edit --json
  report 1 --file respuestas.csv --xlsx tablero.xlsx`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := "1"
			if len(args) == 1 {
				raw = args[0]
			}
			return runReport(cmd.Context(), opts, raw, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "read responses from a local .csv or .xlsx file")
	cmd.Flags().StringVar(&opts.url, "url", "", "read responses from a public Google Sheets URL")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "write the dashboard as a workbook to this path")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the dashboard as JSON")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	cmd.MarkFlagsMutuallyExclusive("file", "url")
	cmd.MarkFlagsMutuallyExclusive("xlsx", "json")

	return cmd
}

func runReport(ctx context.Context, opts *reportOptions, raw string, out, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	sel, err := survey.ParseSelection(raw)
	if err != nil {
		return err
	}

	logger, err := infrastructure.NewLogger(config.LoggingConfig{
		Level:  opts.logLevel,
		Format: "text",
		Output: "console",
	}, errOut)
	if err != nil {
		return err
	}

	src, err := newSource(ctx, opts, logger)
	if err != nil {
		return err
	}

	svc := services.NewDashboardService(src, source.NewCache(logger, nil), nil, nil, logger)
	dashboard, err := svc.Build(ctx, sel.Workshop)
	if err != nil {
		var colErr *survey.ColumnNotFoundError
		if errors.As(err, &colErr) && len(colErr.Candidates) > 0 {
			return fmt.Errorf("%w (columnas similares: %v)", err, colErr.Candidates)
		}
		return err
	}

	switch {
	case opts.xlsx != "":
		if err := exporter.NewWorkbookWriter(logger).SaveAs(opts.xlsx, dashboard); err != nil {
			return err
		}
		logger.Info("workbook written", slog.String("path", opts.xlsx))
		_, err = fmt.Fprintf(out, "Tablero guardado en %s (hojas: %s)\n",
			opts.xlsx, strings.Join(exporter.Sheets(dashboard), ", "))
		return err
	case opts.json:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(dashboard)
	default:
		return printDashboard(out, dashboard)
	}
}

// newSource falls back to the environment configuration when neither
// --file nor --url is given.
func newSource(ctx context.Context, opts *reportOptions, logger *slog.Logger) (source.Source, error) {
	var cfg config.SourceConfig
	switch {
	case opts.file != "":
		cfg = config.Default().Source
		cfg.Kind = source.KindFile
		cfg.FilePath = opts.file
	case opts.url != "":
		cfg = config.Default().Source
		cfg.Kind = source.KindCSV
		cfg.SheetURL = opts.url
	default:
		loaded, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("no --file or --url given and configuration failed: %w", err)
		}
		cfg = loaded.Source
	}

	if cfg.Kind == source.KindFile {
		if _, err := os.Stat(cfg.FilePath); err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", cfg.FilePath, err)
		}
	}
	return source.New(ctx, cfg, logger)
}
