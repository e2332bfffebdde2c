package timeliness

import (
	"slices"
	"strings"

	"opencoesione/internal/dataset"
	"opencoesione/internal/region"
)

// Source is one funding column of a project.
type Source string

const (
	Public  Source = "pubblico"
	Foreign Source = "estero"
	Private Source = "privato"
)

// Sources lists the funding sources in stacking order.
var Sources = []Source{Public, Foreign, Private}

func (s Source) Label() string {
	switch s {
	case Public:
		return "Pubblico"
	case Foreign:
		return "Estero"
	default:
		return "Privato"
	}
}

func (s Source) amount(p dataset.Project) float64 {
	switch s {
	case Public:
		return p.PublicFunding
	case Foreign:
		return p.ForeignFunding
	default:
		return p.PrivateFunding
	}
}

// YearFunding is the funding of the projects started in one year.
type YearFunding struct {
	Year     int
	Projects int
	Amounts  map[Source]float64
}

// Total sums every source.
func (y YearFunding) Total() float64 {
	var t float64
	for _, s := range Sources {
		t += y.Amounts[s]
	}
	return t
}

// FundingByYear sums funding per actual start year and source. Years where
// every source sums to zero are left out. The result is sorted by year.
func FundingByYear(records []Record) []YearFunding {
	byYear := map[int]*YearFunding{}
	for _, r := range records {
		if !r.ActualStart.Valid {
			continue
		}
		y := r.ActualStart.Year()
		row, ok := byYear[y]
		if !ok {
			row = &YearFunding{Year: y, Amounts: map[Source]float64{}}
			byYear[y] = row
		}
		row.Projects++
		for _, s := range Sources {
			row.Amounts[s] += s.amount(r.Project)
		}
	}

	out := make([]YearFunding, 0, len(byYear))
	for _, row := range byYear {
		if row.Total() != 0 {
			out = append(out, *row)
		}
	}
	slices.SortFunc(out, func(a, b YearFunding) int { return a.Year - b.Year })
	return out
}

// MultiRegionSeparator joins the regions of a project spanning several.
const MultiRegionSeparator = ":::"

// FundingGrid is public funding per region (rows) and actual start year
// (columns).
type FundingGrid struct {
	Regions []region.Key
	Names   []string
	Years   []int
	Values  [][]float64
}

// Empty reports whether the grid has no cell.
func (g FundingGrid) Empty() bool {
	return len(g.Regions) == 0 || len(g.Years) == 0
}

// Leader returns the row holding the largest share of column col and that
// share in percent. row is -1 when the column sums to zero.
func (g FundingGrid) Leader(col int) (row int, pct float64) {
	var total, best float64
	row = -1
	for i := range g.Values {
		v := g.Values[i][col]
		total += v
		if row < 0 || v > best {
			row, best = i, v
		}
	}
	if total <= 0 {
		return -1, 0
	}
	return row, 100 * best / total
}

// PublicFundingGrid builds the region by year grid of public funding. A
// project listing several regions splits its funding equally among them;
// parts that are not one of the twenty regions keep their share out of the
// grid.
func PublicFundingGrid(records []Record) FundingGrid {
	sums := map[region.Key]map[int]float64{}
	years := map[int]bool{}
	for _, r := range records {
		if !r.HasFunding || !r.ActualStart.Valid {
			continue
		}
		parts := strings.Split(r.Region, MultiRegionSeparator)
		share := r.PublicFunding / float64(len(parts))
		y := r.ActualStart.Year()
		for _, part := range parts {
			key := region.NormalizeString(part)
			if !region.Known(key) {
				continue
			}
			if sums[key] == nil {
				sums[key] = map[int]float64{}
			}
			sums[key][y] += share
			years[y] = true
		}
	}

	var g FundingGrid
	for _, k := range region.Keys() {
		if _, ok := sums[k]; !ok {
			continue
		}
		name, _ := region.DisplayName(k)
		g.Regions = append(g.Regions, k)
		g.Names = append(g.Names, name)
	}
	for y := range years {
		g.Years = append(g.Years, y)
	}
	slices.Sort(g.Years)

	g.Values = make([][]float64, len(g.Regions))
	for i, k := range g.Regions {
		g.Values[i] = make([]float64, len(g.Years))
		for j, y := range g.Years {
			g.Values[i][j] = sums[k][y]
		}
	}
	return g
}
