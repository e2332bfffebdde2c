// Package chart draws the timeliness charts with gonum/plot.
package chart

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Slice is one wedge of a pie.
type Slice struct {
	Label string
	Value int
	Color color.Color
}

// Pie is a plot.Plotter drawing a donut chart centred in the data area.
type Pie struct {
	Slices []Slice

	// RingWidth is the ring thickness as a fraction of the radius.
	// 1 draws a full pie.
	RingWidth float64

	EdgeColor color.Color
	EdgeWidth vg.Length

	// CenterText is drawn in the hole, e.g. the total.
	CenterText string

	// EmptyText replaces the wedges when every slice is zero.
	EmptyText string
}

// NewPie returns a donut with white wedge edges.
func NewPie(slices []Slice) *Pie {
	return &Pie{
		Slices:    slices,
		RingWidth: 0.7,
		EdgeColor: color.White,
		EdgeWidth: vg.Points(1.5),
		EmptyText: "No data",
	}
}

// Total is the sum of all slice values.
func (p *Pie) Total() int {
	total := 0
	for _, s := range p.Slices {
		total += s.Value
	}
	return total
}

// Percentages returns each value's share of the total rounded to the nearest
// whole percent, or nil when the total is zero.
func Percentages(values []int) []int {
	total := 0
	for _, v := range values {
		total += v
	}
	if total == 0 {
		return nil
	}
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = int(math.Round(100 * float64(v) / float64(total)))
	}
	return out
}

// Plot implements plot.Plotter.
func (p *Pie) Plot(c draw.Canvas, plt *plot.Plot) {
	center := vg.Point{X: (c.Min.X + c.Max.X) / 2, Y: (c.Min.Y + c.Max.Y) / 2}
	radius := min(c.Max.X-c.Min.X, c.Max.Y-c.Min.Y) / 2 * 0.9

	sty := plt.Legend.TextStyle
	sty.XAlign = draw.XCenter
	sty.YAlign = draw.YCenter

	total := p.Total()
	if total == 0 {
		c.FillText(sty, center, p.EmptyText)
		return
	}

	values := make([]int, len(p.Slices))
	for i, s := range p.Slices {
		values[i] = s.Value
	}
	pct := Percentages(values)

	start := 0.0
	labels := make([]vg.Point, len(p.Slices))
	for i, s := range p.Slices {
		if s.Value == 0 {
			continue
		}
		sweep := 2 * math.Pi * float64(s.Value) / float64(total)

		var wedge vg.Path
		wedge.Move(center)
		wedge.Arc(center, radius, start, sweep)
		wedge.Close()

		c.SetColor(s.Color)
		c.Fill(wedge)
		if p.EdgeColor != nil && p.EdgeWidth > 0 {
			c.SetLineWidth(p.EdgeWidth)
			c.SetColor(p.EdgeColor)
			c.Stroke(wedge)
		}

		mid := start + sweep/2
		r := float64(radius) * (1 - p.RingWidth/2)
		labels[i] = vg.Point{
			X: center.X + vg.Length(r*math.Cos(mid)),
			Y: center.Y + vg.Length(r*math.Sin(mid)),
		}
		start += sweep
	}

	if p.RingWidth > 0 && p.RingWidth < 1 {
		inner := radius * vg.Length(1-p.RingWidth)
		var hole vg.Path
		hole.Move(vg.Point{X: center.X + inner, Y: center.Y})
		hole.Arc(center, inner, 0, 2*math.Pi)
		hole.Close()

		bg := plt.BackgroundColor
		if bg == nil {
			bg = color.White
		}
		c.SetColor(bg)
		c.Fill(hole)
	}

	wedgeText := sty
	wedgeText.Color = color.White
	for i, s := range p.Slices {
		if s.Value == 0 {
			continue
		}
		c.FillText(wedgeText, labels[i], fmt.Sprintf("%d%%", pct[i]))
	}

	if p.CenterText != "" {
		c.FillText(sty, center, p.CenterText)
	}
}

// DataRange implements plot.DataRanger. The pie ignores data coordinates.
func (p *Pie) DataRange() (xmin, xmax, ymin, ymax float64) {
	return -1, 1, -1, 1
}

// Thumbnails returns one legend swatch per slice.
func (p *Pie) Thumbnails() []plot.Thumbnailer {
	out := make([]plot.Thumbnailer, len(p.Slices))
	for i, s := range p.Slices {
		out[i] = swatch{color: s.Color}
	}
	return out
}

type swatch struct {
	color color.Color
}

func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(s.color, c.ClipPolygonY(pts))
}
