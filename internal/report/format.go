// Package report writes the timeliness summary as workbook, Markdown, PDF
// and console tables.
package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"opencoesione/internal/timeliness"
)

var italian = message.NewPrinter(language.Italian)

// FormatEuro formats v with Italian grouping, e.g. "1.234.567,89 €".
func FormatEuro(v float64) string {
	return italian.Sprintf("%.2f €", v)
}

// FormatCount formats n with Italian thousands grouping.
func FormatCount(n int) string {
	return italian.Sprintf("%d", n)
}

// FormatShare formats a percentage with one decimal.
func FormatShare(pct float64) string {
	return italian.Sprintf("%.1f%%", pct)
}

// categories is every category in report order, Unknown last.
var categories = append(append([]timeliness.Category{}, timeliness.Categories...), timeliness.Unknown)
