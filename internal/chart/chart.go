package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"opencoesione/internal/timeliness"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Default figure size.
const (
	Width  = 8 * vg.Inch
	Height = 6 * vg.Inch
)

// Palette colours each charted category.
var Palette = map[timeliness.Category]color.Color{
	timeliness.OnTime:  color.RGBA{R: 0x2A, G: 0x63, B: 0xAD, A: 255},
	timeliness.Delayed: color.RGBA{R: 0x32, G: 0x2A, B: 0xAD, A: 255},
	timeliness.Early:   color.RGBA{R: 0x2A, G: 0xA5, B: 0xAD, A: 255},
}

// TimelinessSlices turns a summary into one pie slice per charted category.
func TimelinessSlices(s timeliness.Summary) []Slice {
	slices := make([]Slice, len(timeliness.Categories))
	for i, c := range timeliness.Categories {
		slices[i] = Slice{Label: c.Label(), Value: s.Count(c), Color: Palette[c]}
	}
	return slices
}

// TimelinessPie builds the donut chart of project start timeliness.
func TimelinessPie(s timeliness.Summary) *plot.Plot {
	p := plot.New()
	p.Title.Text = "Projects start timeliness"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.HideAxes()

	pie := NewPie(TimelinessSlices(s))
	pie.CenterText = fmt.Sprintf("Total: %d", pie.Total())
	p.Add(pie)

	p.Legend.Top = true
	p.Legend.Add("Project start")
	for i, thumb := range pie.Thumbnails() {
		p.Legend.Add(pie.Slices[i].Label, thumb)
	}
	return p
}

// RegionBars builds a stacked bar chart of the categories per region.
func RegionBars(s timeliness.Summary) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Projects start timeliness by region (%s)", s.Range)
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Y.Label.Text = "Projects"

	if len(s.Regions) == 0 {
		p.X.Min, p.X.Max = 0, 1
		p.Y.Min, p.Y.Max = 0, 1
		return p, nil
	}

	labels := make([]string, len(s.Regions))
	for i, row := range s.Regions {
		labels[i] = row.Name
	}

	var below *plotter.BarChart
	maxTotal := 0
	for _, c := range timeliness.Categories {
		values := make(plotter.Values, len(s.Regions))
		for i, row := range s.Regions {
			values[i] = float64(row.Counts[c])
		}

		bars, err := plotter.NewBarChart(values, vg.Points(18))
		if err != nil {
			return nil, fmt.Errorf("region bars for %s: %w", c, err)
		}
		bars.Color = Palette[c]
		bars.LineStyle.Width = vg.Length(0)
		if below != nil {
			bars.StackOn(below)
		}
		below = bars

		p.Add(bars)
		p.Legend.Add(c.Label(), bars)
	}
	for _, row := range s.Regions {
		n := row.Counts[timeliness.OnTime] + row.Counts[timeliness.Delayed] + row.Counts[timeliness.Early]
		maxTotal = max(maxTotal, n)
	}

	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 3
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XRight
	p.Y.Min = 0
	p.Y.Max = math.Max(1, float64(maxTotal)*1.1)
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	return p, nil
}

// Save writes p to path; the format follows the file extension.
func Save(p *plot.Plot, w, h vg.Length, path string) error {
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	return nil
}

// Render writes p to out in the given format ("png", "svg", "pdf", ...).
func Render(p *plot.Plot, w, h vg.Length, format string, out io.Writer) error {
	wt, err := p.WriterTo(w, h, format)
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	if _, err := wt.WriteTo(out); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
