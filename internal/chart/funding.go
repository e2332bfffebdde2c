package chart

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"opencoesione/internal/timeliness"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// SourcePalette colours each funding source.
var SourcePalette = map[timeliness.Source]color.Color{
	timeliness.Public:  color.RGBA{R: 0x19, G: 0x76, B: 0xD2, A: 255},
	timeliness.Foreign: color.RGBA{R: 0x43, G: 0xA0, B: 0x47, A: 255},
	timeliness.Private: color.RGBA{R: 0xFF, G: 0x70, B: 0x43, A: 255},
}

// FundingByYear builds a stacked bar chart of funding in millions of euro per
// actual start year and source.
func FundingByYear(s timeliness.Summary) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Funding by start year (%s)", s.Range)
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Start year"
	p.Y.Label.Text = "Funding (million €)"

	if len(s.Years) == 0 {
		p.X.Min, p.X.Max = 0, 1
		p.Y.Min, p.Y.Max = 0, 1
		return p, nil
	}

	labels := make([]string, len(s.Years))
	for i, y := range s.Years {
		labels[i] = strconv.Itoa(y.Year)
	}

	var below *plotter.BarChart
	for _, src := range timeliness.Sources {
		values := make(plotter.Values, len(s.Years))
		for i, y := range s.Years {
			values[i] = y.Amounts[src] / 1e6
		}

		bars, err := plotter.NewBarChart(values, vg.Points(22))
		if err != nil {
			return nil, fmt.Errorf("funding bars for %s: %w", src, err)
		}
		bars.Color = SourcePalette[src]
		bars.LineStyle.Width = vg.Length(0)
		if below != nil {
			bars.StackOn(below)
		}
		below = bars

		p.Add(bars)
		p.Legend.Add(src.Label(), bars)
	}

	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XRight
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	return p, nil
}

// gridXYZ adapts a funding grid to plotter.GridXYZ. Cells hold log10 of
// the amount; empty cells are NaN and left blank.
type gridXYZ struct {
	g timeliness.FundingGrid
}

func (g gridXYZ) Dims() (c, r int) { return len(g.g.Years), len(g.g.Regions) }

func (g gridXYZ) Z(c, r int) float64 {
	// Row 0 is drawn at the bottom, the first region belongs on top.
	v := g.g.Values[len(g.g.Regions)-1-r][c]
	if v <= 0 {
		return math.NaN()
	}
	return math.Log10(v)
}

func (g gridXYZ) X(c int) float64 { return float64(c) }
func (g gridXYZ) Y(r int) float64 { return float64(r) }

// FundingHeatmap builds the region by start year heatmap of public funding.
// Colours follow log10 of the amount.
func FundingHeatmap(s timeliness.Summary) *plot.Plot {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Public funding by region and start year (%s, log10 €)", s.Range)
	p.Title.TextStyle.Font.Size = vg.Points(16)

	grid := gridXYZ{g: s.Grid}
	if s.Grid.Empty() {
		p.X.Min, p.X.Max = 0, 1
		p.Y.Min, p.Y.Max = 0, 1
		return p
	}

	hm := plotter.NewHeatMap(grid, palette.Heat(12, 1))
	if math.IsInf(hm.Min, 0) {
		// Only zero cells.
		hm.Min, hm.Max = 0, 1
	} else if hm.Max <= hm.Min {
		hm.Max = hm.Min + 1
	}
	p.Add(hm)

	years := make([]string, len(s.Grid.Years))
	for i, y := range s.Grid.Years {
		years[i] = strconv.Itoa(y)
	}
	names := make([]string, len(s.Grid.Names))
	for i := range s.Grid.Names {
		names[i] = s.Grid.Names[len(s.Grid.Names)-1-i]
	}
	p.NominalX(years...)
	p.NominalY(names...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XRight

	return p
}
