package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"opencoesione/internal/chart"
	"opencoesione/internal/config"
	"opencoesione/internal/dataset"
	"opencoesione/internal/report"
	"opencoesione/internal/timeliness"

	"gonum.org/v1/plot"
)

var chartFormats = []string{"png", "svg", "pdf", "jpg", "jpeg", "eps", "tif", "tiff"}

// options is one report run, seeded from config and overridden by flags.
type options struct {
	Input       string
	Delimiter   string
	Sheet       string
	Range       timeliness.YearRange
	OutputDir   string
	ChartFormat string
	XLSX        bool
	PDF         bool
	Markdown    bool
	Now         func() time.Time
}

func optionsFromConfig(c config.Config) options {
	return options{
		Input:       c.InputPath,
		Delimiter:   c.Delimiter,
		Sheet:       c.Sheet,
		Range:       timeliness.YearRange{From: c.StartYear, To: c.EndYear},
		OutputDir:   c.OutputDir,
		ChartFormat: c.ChartFormat,
		XLSX:        c.XLSXEnabled,
		PDF:         c.PDFEnabled,
		Markdown:    c.MarkdownEnabled,
	}
}

func (o options) path(name string) string {
	return filepath.Join(o.OutputDir, name)
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case `\t`, "tab", "\t":
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func run(opts options, out io.Writer, logger *slog.Logger) error {
	if err := opts.Range.Validate(); err != nil {
		return err
	}
	format := strings.ToLower(strings.TrimPrefix(opts.ChartFormat, "."))
	if !slices.Contains(chartFormats, format) {
		return fmt.Errorf("unsupported chart format %q", opts.ChartFormat)
	}
	delim, err := parseDelimiter(opts.Delimiter)
	if err != nil {
		return err
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	fmt.Fprintf(out, "🇮🇹 OPENCOESIONE PROJECTS START TIMELINESS %s\n", opts.Range)
	fmt.Fprintf(out, "Reading %s...\n", opts.Input)

	table, err := dataset.Load(opts.Input, dataset.Options{Delimiter: delim, Sheet: opts.Sheet, Logger: logger})
	if err != nil {
		return err
	}
	logger.Info("dataset loaded", "path", opts.Input, "rows", len(table.Projects))

	records := timeliness.Enrich(timeliness.Filter(table.Projects, opts.Range))
	summary := timeliness.Summarize(len(table.Projects), records, opts.Range)
	fmt.Fprintf(out, "📊 Projects read: %s, started in %s: %s\n",
		report.FormatCount(summary.Loaded), opts.Range, report.FormatCount(summary.Filtered))
	if n := summary.Count(timeliness.Unknown); n > 0 {
		logger.Warn("projects without planned start date", "count", n)
	}
	for _, row := range summary.Regions {
		if !row.Known {
			logger.Warn("unrecognized region", "key", string(row.Key), "projects", row.Total)
		}
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	var written []string
	pie := chart.TimelinessPie(summary)
	piePath := opts.path("timeliness_pie." + format)
	if err := chart.Save(pie, chart.Width, chart.Height, piePath); err != nil {
		return err
	}
	written = append(written, piePath)

	bars, err := chart.RegionBars(summary)
	if err != nil {
		return err
	}
	barsPath := opts.path("timeliness_regions." + format)
	if err := chart.Save(bars, 11*chart.Width/8, chart.Height, barsPath); err != nil {
		return err
	}
	written = append(written, barsPath)

	funding, err := chart.FundingByYear(summary)
	if err != nil {
		return err
	}
	fundingPath := opts.path("timeliness_funding." + format)
	if err := chart.Save(funding, chart.Width, chart.Height, fundingPath); err != nil {
		return err
	}
	written = append(written, fundingPath)

	heatmapPath := opts.path("timeliness_heatmap." + format)
	if err := chart.Save(chart.FundingHeatmap(summary), 11*chart.Width/8, chart.Height, heatmapPath); err != nil {
		return err
	}
	written = append(written, heatmapPath)

	var piePNG []byte
	if opts.XLSX || opts.PDF {
		if piePNG, err = renderPNG(pie); err != nil {
			return err
		}
	}

	if opts.XLSX {
		p := opts.path("timeliness_report.xlsx")
		if err := report.WriteWorkbook(p, summary, records, piePNG); err != nil {
			return err
		}
		written = append(written, p)
	}
	if opts.Markdown {
		p := opts.path("timeliness_report.md")
		if err := writeFile(p, func(w io.Writer) error { return report.WriteMarkdown(w, summary, now()) }); err != nil {
			return err
		}
		written = append(written, p)
	}
	if opts.PDF {
		p := opts.path("timeliness_report.pdf")
		if err := writeFile(p, func(w io.Writer) error { return report.WritePDF(w, summary, piePNG, now()) }); err != nil {
			return err
		}
		written = append(written, p)
	}

	fmt.Fprintln(out)
	report.PrintSummary(out, summary)
	if len(summary.Regions) > 0 {
		report.PrintRegions(out, summary)
	}

	fmt.Fprintln(out, "\n✅ REPORT COMPLETE")
	fmt.Fprintln(out, "📁 Output files:")
	for _, p := range written {
		fmt.Fprintf(out, "   - %s\n", p)
	}
	logger.Debug("report written", "files", len(written))
	return nil
}

func renderPNG(p *plot.Plot) ([]byte, error) {
	var buf bytes.Buffer
	if err := chart.Render(p, chart.Width, chart.Height, "png", &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
