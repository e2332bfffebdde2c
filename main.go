package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"opencoesione/internal/config"
	sentryutil "opencoesione/internal/sentry"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	envErr := config.Load()
	logger := newLogger(config.Cfg.LogLevel)
	if envErr != nil {
		logger.Debug("no .env file, using environment variables", "err", envErr)
	}
	sentryutil.Init(logger)

	if err := rootCmd(logger).Execute(); err != nil {
		sentryutil.CaptureError(err, map[string]string{"component": "report"})
		sentryutil.Flush()
		os.Exit(1)
	}
	sentryutil.Flush()
}

func rootCmd(logger *slog.Logger) *cobra.Command {
	opts := optionsFromConfig(config.Cfg)

	cmd := &cobra.Command{
		Use:   "opencoesione",
		Short: "Project start timeliness for OpenCoesione exports",
		Long: `Reads an OpenCoesione project export (CSV or XLSX), keeps the projects
whose actual start falls in the selected years and compares the actual
start year with the planned one.

It produces:
  - a pie chart of on time, delayed and early starts
  - a stacked bar chart per region
  - funding per start year by source and a region by year heatmap
  - XLSX, Markdown and PDF summaries`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := run(opts, cmd.OutOrStdout(), logger); err != nil {
				logger.Error("report failed", "input", opts.Input, "err", err)
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return err
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.Input, "input", "i", opts.Input, "CSV or XLSX export to read")
	f.IntVar(&opts.Range.From, "from", opts.Range.From, "first actual start year included")
	f.IntVar(&opts.Range.To, "to", opts.Range.To, "last actual start year included")
	f.StringVarP(&opts.OutputDir, "out", "o", opts.OutputDir, "directory for charts and reports")
	f.StringVar(&opts.ChartFormat, "format", opts.ChartFormat, "chart format: png, svg, pdf, jpg")
	f.StringVar(&opts.Delimiter, "delimiter", opts.Delimiter, "CSV delimiter, auto-detected when empty")
	f.StringVar(&opts.Sheet, "sheet", opts.Sheet, "worksheet to read from XLSX input")
	noXLSX := f.Bool("no-xlsx", !config.Cfg.XLSXEnabled, "skip the XLSX report")
	noPDF := f.Bool("no-pdf", !config.Cfg.PDFEnabled, "skip the PDF report")
	noMarkdown := f.Bool("no-markdown", !config.Cfg.MarkdownEnabled, "skip the Markdown report")

	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		opts.XLSX = !*noXLSX
		opts.PDF = !*noPDF
		opts.Markdown = !*noMarkdown
	}
	return cmd
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
