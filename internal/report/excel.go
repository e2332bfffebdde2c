package report

import (
	"fmt"
	"math"

	"opencoesione/internal/timeliness"

	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary  = "Riepilogo"
	sheetRegions  = "Regioni"
	sheetProjects = "Progetti"
	sheetFunding  = "Finanziamenti"
	sheetGrid     = "Pubblico per regione"
)

// WriteWorkbook saves the summary, the per-region breakdown and the classified
// projects to an XLSX file. chartPNG, when not empty, is placed on the summary
// sheet.
func WriteWorkbook(path string, s timeliness.Summary, records []timeliness.Record, chartPNG []byte) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return fmt.Errorf("workbook: %w", err)
	}
	if err := writeRows(f, sheetSummary, summaryRows(s), 24); err != nil {
		return err
	}
	if len(chartPNG) > 0 {
		err := f.AddPictureFromBytes(sheetSummary, "F2", &excelize.Picture{
			Extension: ".png",
			File:      chartPNG,
			Format:    &excelize.GraphicOptions{ScaleX: 0.6, ScaleY: 0.6},
		})
		if err != nil {
			return fmt.Errorf("workbook: add chart: %w", err)
		}
	}

	if _, err := f.NewSheet(sheetRegions); err != nil {
		return fmt.Errorf("workbook: %w", err)
	}
	if err := writeRows(f, sheetRegions, regionRows(s), 18); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetProjects); err != nil {
		return fmt.Errorf("workbook: %w", err)
	}
	if err := writeRows(f, sheetProjects, projectRows(records), 20); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetFunding); err != nil {
		return fmt.Errorf("workbook: %w", err)
	}
	if err := writeRows(f, sheetFunding, fundingRows(s), 18); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetGrid); err != nil {
		return fmt.Errorf("workbook: %w", err)
	}
	if err := writeRows(f, sheetGrid, gridRows(s.Grid), 16); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("workbook: save %s: %w", path, err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}, colWidth float64) error {
	width := 0
	for i, row := range rows {
		width = max(width, len(row))
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("workbook: sheet %s row %d: %w", sheet, i+1, err)
		}
	}
	if width == 0 {
		return nil
	}
	last, err := excelize.ColumnNumberToName(width)
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", last, colWidth)
}

func summaryRows(s timeliness.Summary) [][]interface{} {
	rows := [][]interface{}{
		{"Periodo (inizio effettivo)", s.Range.String()},
		{"Progetti caricati", s.Loaded},
		{"Progetti nel periodo", s.Filtered},
		{},
		{"Categoria", "Progetti", "Quota (%)", "Finanziamento pubblico (€)"},
	}
	for _, c := range categories {
		share := interface{}("-")
		if c != timeliness.Unknown {
			share = round1(s.Share(c))
		}
		rows = append(rows, []interface{}{c.Label(), s.Count(c), share, s.Funding[c]})
	}
	rows = append(rows, []interface{}{"Totale", s.Filtered})
	return rows
}

func regionRows(s timeliness.Summary) [][]interface{} {
	rows := [][]interface{}{
		{"Regione", "Chiave", "On Time", "Delayed", "Early", "Unknown", "Totale", "Quota ritardi (%)"},
	}
	for _, r := range s.Regions {
		rows = append(rows, []interface{}{
			r.Name,
			string(r.Key),
			r.Counts[timeliness.OnTime],
			r.Counts[timeliness.Delayed],
			r.Counts[timeliness.Early],
			r.Counts[timeliness.Unknown],
			r.Total,
			round1(r.DelayedShare()),
		})
	}
	return rows
}

func projectRows(records []timeliness.Record) [][]interface{} {
	rows := [][]interface{}{
		{"Riga", "Codice", "Titolo", "DEN_REGIONE", "Chiave regione", "Regione",
			"Inizio previsto", "Inizio effettivo", "Fine effettiva", "Categoria", "Finanziamento pubblico (€)"},
	}
	for _, r := range records {
		var funding interface{}
		if r.HasFunding {
			funding = r.PublicFunding
		}
		rows = append(rows, []interface{}{
			r.Line,
			r.Code,
			r.Title,
			r.Region,
			string(r.RegionKey),
			r.RegionName,
			r.PlannedStart.String(),
			r.ActualStart.String(),
			r.ActualEnd.String(),
			r.Category().Label(),
			funding,
		})
	}
	return rows
}

func fundingRows(s timeliness.Summary) [][]interface{} {
	header := []interface{}{"Anno inizio", "Progetti"}
	for _, src := range timeliness.Sources {
		header = append(header, src.Label()+" (€)")
	}
	header = append(header, "Totale (€)")

	rows := [][]interface{}{header}
	for _, y := range s.Years {
		row := []interface{}{y.Year, y.Projects}
		for _, src := range timeliness.Sources {
			row = append(row, y.Amounts[src])
		}
		rows = append(rows, append(row, y.Total()))
	}
	return rows
}

func gridRows(g timeliness.FundingGrid) [][]interface{} {
	header := []interface{}{"Regione"}
	for _, y := range g.Years {
		header = append(header, y)
	}
	rows := [][]interface{}{header}
	for i, name := range g.Names {
		row := []interface{}{name}
		for _, v := range g.Values[i] {
			row = append(row, v)
		}
		rows = append(rows, row)
	}

	leaders := []interface{}{"Regione principale (%)"}
	for j := range g.Years {
		r, pct := g.Leader(j)
		if r < 0 {
			leaders = append(leaders, "-")
			continue
		}
		leaders = append(leaders, fmt.Sprintf("%s %.1f", g.Names[r], pct))
	}
	return append(rows, []interface{}{}, leaders)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
