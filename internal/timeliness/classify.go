package timeliness

import (
	"cmp"
	"slices"

	"opencoesione/internal/dataset"
	"opencoesione/internal/region"
)

// Category is the start timeliness of a project.
type Category string

const (
	OnTime  Category = "on_time"
	Delayed Category = "delayed"
	Early   Category = "early"
	// Unknown holds projects missing the planned (or actual) start date.
	Unknown Category = "unknown"
)

// Categories lists the charted categories in display order.
var Categories = []Category{OnTime, Delayed, Early}

// Label is the human-readable name used in charts and reports.
func (c Category) Label() string {
	switch c {
	case OnTime:
		return "On Time"
	case Delayed:
		return "Delayed"
	case Early:
		return "Early"
	default:
		return "Unknown"
	}
}

// Classify compares the years of the actual and planned start dates.
func Classify(planned, actual dataset.Date) Category {
	if !planned.Valid || !actual.Valid {
		return Unknown
	}
	switch a, p := actual.Year(), planned.Year(); {
	case a == p:
		return OnTime
	case a > p:
		return Delayed
	default:
		return Early
	}
}

// Partition splits records into disjoint subsets by category.
func Partition(records []Record) map[Category][]Record {
	out := make(map[Category][]Record, 4)
	for _, r := range records {
		c := r.Category()
		out[c] = append(out[c], r)
	}
	return out
}

// RegionRow is the per-region breakdown of one summary.
type RegionRow struct {
	Key    region.Key
	Name   string
	Known  bool
	Counts map[Category]int
	Total  int
}

// Summary aggregates one report run.
type Summary struct {
	Range    YearRange
	Loaded   int
	Filtered int
	Counts   map[Category]int
	Funding  map[Category]float64
	Regions  []RegionRow

	// Funding per actual start year and source.
	Years []YearFunding
	// Public funding per region and actual start year.
	Grid FundingGrid
}

// Count returns the number of projects in c.
func (s Summary) Count(c Category) int {
	return s.Counts[c]
}

// Classified is the number of projects in the three charted categories.
func (s Summary) Classified() int {
	n := 0
	for _, c := range Categories {
		n += s.Counts[c]
	}
	return n
}

// Share is the percentage of classified projects falling in c, 0 when
// nothing was classified.
func (s Summary) Share(c Category) float64 {
	n := s.Classified()
	if n == 0 {
		return 0
	}
	return 100 * float64(s.Counts[c]) / float64(n)
}

// DelayedShare is the percentage of the region's classified projects that
// started late.
func (r RegionRow) DelayedShare() float64 {
	n := r.Counts[OnTime] + r.Counts[Delayed] + r.Counts[Early]
	if n == 0 {
		return 0
	}
	return 100 * float64(r.Counts[Delayed]) / float64(n)
}

// Summarize counts records per category and per region. loaded is the
// number of rows read before filtering.
func Summarize(loaded int, records []Record, bounds YearRange) Summary {
	s := Summary{
		Range:    bounds,
		Loaded:   loaded,
		Filtered: len(records),
		Counts:   map[Category]int{OnTime: 0, Delayed: 0, Early: 0, Unknown: 0},
		Funding:  map[Category]float64{},
	}

	byRegion := map[region.Key]*RegionRow{}
	for _, r := range records {
		c := r.Category()
		s.Counts[c]++
		if r.HasFunding {
			s.Funding[c] += r.PublicFunding
		}

		row, ok := byRegion[r.RegionKey]
		if !ok {
			row = &RegionRow{
				Key:    r.RegionKey,
				Name:   regionLabel(r),
				Known:  r.HasRegionName,
				Counts: map[Category]int{},
			}
			byRegion[r.RegionKey] = row
		}
		row.Counts[c]++
		row.Total++
	}

	for _, row := range byRegion {
		s.Regions = append(s.Regions, *row)
	}
	slices.SortFunc(s.Regions, compareRegions)

	s.Years = FundingByYear(records)
	s.Grid = PublicFundingGrid(records)
	return s
}

func regionLabel(r Record) string {
	switch {
	case r.HasRegionName:
		return r.RegionName
	case r.RegionKey == "":
		return "(non indicata)"
	default:
		return string(r.RegionKey)
	}
}

// Canonical regions first in north-to-south order, then unrecognized keys
// alphabetically, then the empty key.
func compareRegions(a, b RegionRow) int {
	rank := func(row RegionRow) int {
		if i := slices.Index(region.Keys(), row.Key); i >= 0 {
			return i
		}
		if row.Key == "" {
			return 2 * len(region.Keys())
		}
		return len(region.Keys())
	}
	if c := cmp.Compare(rank(a), rank(b)); c != 0 {
		return c
	}
	return cmp.Compare(a.Key, b.Key)
}
