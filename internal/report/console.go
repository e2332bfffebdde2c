package report

import (
	"fmt"
	"io"

	"opencoesione/internal/timeliness"

	"github.com/olekukonko/tablewriter"
)

// PrintSummary renders the category table to w.
func PrintSummary(w io.Writer, s timeliness.Summary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Project start", "Projects", "Share", "Public funding"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, c := range categories {
		share := "-"
		if c != timeliness.Unknown {
			share = FormatShare(s.Share(c))
		}
		table.Append([]string{c.Label(), FormatCount(s.Count(c)), share, FormatEuro(s.Funding[c])})
	}
	table.SetFooter([]string{"Total", FormatCount(s.Filtered), "", ""})
	table.Render()
}

// PrintRegions renders the per-region table to w.
func PrintRegions(w io.Writer, s timeliness.Summary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Region", "On Time", "Delayed", "Early", "Unknown", "Delayed share"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, r := range s.Regions {
		table.Append([]string{
			r.Name,
			fmt.Sprint(r.Counts[timeliness.OnTime]),
			fmt.Sprint(r.Counts[timeliness.Delayed]),
			fmt.Sprint(r.Counts[timeliness.Early]),
			fmt.Sprint(r.Counts[timeliness.Unknown]),
			FormatShare(r.DelayedShare()),
		})
	}
	table.Render()
}
