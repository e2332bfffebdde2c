package report

import (
	"fmt"
	"io"
	"time"

	"opencoesione/internal/timeliness"
)

// WriteMarkdown writes the summary report as Markdown.
func WriteMarkdown(w io.Writer, s timeliness.Summary, generated time.Time) error {
	report := fmt.Sprintf(`# PROJECTS START TIMELINESS
## OpenCoesione projects started %s

### 📊 EXECUTIVE SUMMARY

`, s.Range)

	report += fmt.Sprintf("- **Projects loaded**: %s\n", FormatCount(s.Loaded))
	report += fmt.Sprintf("- **Projects started in %s**: %s\n", s.Range, FormatCount(s.Filtered))
	report += fmt.Sprintf("- **Classified (planned start known)**: %s\n", FormatCount(s.Classified()))
	if n := s.Count(timeliness.Unknown); n > 0 {
		report += fmt.Sprintf("- **Without planned start date**: %s\n", FormatCount(n))
	}
	if s.Classified() > 0 {
		report += fmt.Sprintf("- **Started in the planned year**: %s\n", FormatShare(s.Share(timeliness.OnTime)))
		report += fmt.Sprintf("- **Started later than planned**: %s\n", FormatShare(s.Share(timeliness.Delayed)))
	}

	report += "\n### 🕒 START TIMELINESS\n\n"
	report += "| Category | Projects | Share | Public funding |\n"
	report += "|----------|----------|-------|----------------|\n"
	for _, c := range categories {
		share := "-"
		if c != timeliness.Unknown {
			share = FormatShare(s.Share(c))
		}
		report += fmt.Sprintf("| %s | %s | %s | %s |\n", c.Label(), FormatCount(s.Count(c)), share, FormatEuro(s.Funding[c]))
	}

	if len(s.Regions) > 0 {
		report += "\n### 🗺️ BY REGION\n\n"
		report += "| Region | On Time | Delayed | Early | Unknown | Total | Delayed share |\n"
		report += "|--------|---------|---------|-------|---------|-------|---------------|\n"
		for _, r := range s.Regions {
			report += fmt.Sprintf("| %s | %d | %d | %d | %d | %d | %s |\n",
				r.Name,
				r.Counts[timeliness.OnTime],
				r.Counts[timeliness.Delayed],
				r.Counts[timeliness.Early],
				r.Counts[timeliness.Unknown],
				r.Total,
				FormatShare(r.DelayedShare()))
		}
	}

	if len(s.Years) > 0 {
		report += "\n### 💶 FUNDING BY START YEAR\n\n"
		report += "| Year | Projects | Pubblico | Estero | Privato | Total |\n"
		report += "|------|----------|----------|--------|---------|-------|\n"
		for _, y := range s.Years {
			report += fmt.Sprintf("| %d | %s | %s | %s | %s | %s |\n",
				y.Year,
				FormatCount(y.Projects),
				FormatEuro(y.Amounts[timeliness.Public]),
				FormatEuro(y.Amounts[timeliness.Foreign]),
				FormatEuro(y.Amounts[timeliness.Private]),
				FormatEuro(y.Total()))
		}
	}

	if !s.Grid.Empty() {
		report += "\n**Region with the largest public funding per year**\n\n"
		for j, y := range s.Grid.Years {
			if r, pct := s.Grid.Leader(j); r >= 0 {
				report += fmt.Sprintf("- %d: %s (%s)\n", y, s.Grid.Names[r], FormatShare(pct))
			}
		}
	}

	report += fmt.Sprintf("\n---\n*Generated by OpenCoesione timeliness report - %s*\n", generated.Format("2 January 2006"))

	_, err := io.WriteString(w, report)
	return err
}
