package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"opencoesione/internal/timeliness"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageW   = 210.0
	marginL = 18.0
	marginR = 18.0
)

var (
	cInk    = [3]int{24, 32, 48}
	cMuted  = [3]int{110, 118, 130}
	cHeader = [3]int{42, 99, 173}
	cRule   = [3]int{220, 224, 230}
)

func setFill(pdf *gofpdf.Fpdf, c [3]int) { pdf.SetFillColor(c[0], c[1], c[2]) }
func setText(pdf *gofpdf.Fpdf, c [3]int) { pdf.SetTextColor(c[0], c[1], c[2]) }
func setDraw(pdf *gofpdf.Fpdf, c [3]int) { pdf.SetDrawColor(c[0], c[1], c[2]) }

// WritePDF writes an A4 summary with the category table and, when chartPNG is
// not empty, the pie chart.
func WritePDF(w io.Writer, s timeliness.Summary, chartPNG []byte, generated time.Time) error {
	contentW := pageW - marginL - marginR

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginL, 15, marginR)
	pdf.SetAutoPageBreak(true, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-14)
		setDraw(pdf, cRule)
		pdf.SetLineWidth(0.3)
		pdf.Line(marginL, pdf.GetY(), pageW-marginR, pdf.GetY())
		pdf.SetY(-11)
		pdf.SetFont("Helvetica", "", 7)
		setText(pdf, cMuted)
		pdf.CellFormat(contentW/2, 8, "OpenCoesione", "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW/2, 8, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	setText(pdf, cInk)
	pdf.CellFormat(contentW, 10, "Projects start timeliness", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	setText(pdf, cMuted)
	pdf.CellFormat(contentW, 6, tr(fmt.Sprintf("Projects started %s - generated %s", s.Range, generated.Format("02/01/2006"))), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	setText(pdf, cInk)
	for _, line := range []string{
		fmt.Sprintf("Projects loaded: %s", FormatCount(s.Loaded)),
		fmt.Sprintf("Projects in period: %s", FormatCount(s.Filtered)),
		fmt.Sprintf("Classified: %s", FormatCount(s.Classified())),
	} {
		pdf.CellFormat(contentW, 5.5, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	cols := []float64{50, 30, 30, contentW - 110}
	pdf.SetFont("Helvetica", "B", 9)
	setFill(pdf, cHeader)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range []string{"Category", "Projects", "Share", "Public funding"} {
		pdf.CellFormat(cols[i], 7, h, "", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	setText(pdf, cInk)
	setDraw(pdf, cRule)
	for _, c := range categories {
		share := "-"
		if c != timeliness.Unknown {
			share = FormatShare(s.Share(c))
		}
		cells := []string{c.Label(), FormatCount(s.Count(c)), share, FormatEuro(s.Funding[c])}
		for i, v := range cells {
			pdf.CellFormat(cols[i], 6.5, tr(v), "B", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(chartPNG) > 0 {
		pdf.Ln(6)
		opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		pdf.RegisterImageOptionsReader("timeliness", opts, bytes.NewReader(chartPNG))
		pdf.ImageOptions("timeliness", marginL, pdf.GetY(), contentW, 0, true, opts, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf report: %w", err)
	}
	return nil
}
