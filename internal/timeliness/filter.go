// Package timeliness filters projects by start year and classifies how their
// actual start compares with the planned one.
package timeliness

import (
	"fmt"
	"maps"

	"opencoesione/internal/dataset"
	"opencoesione/internal/region"
)

// YearRange is an inclusive range of calendar years.
type YearRange struct {
	From int
	To   int
}

// DefaultRange is the programming window covered by the report.
var DefaultRange = YearRange{From: 2014, To: 2024}

func (r YearRange) Contains(year int) bool {
	return year >= r.From && year <= r.To
}

func (r YearRange) Validate() error {
	if r.From > r.To {
		return fmt.Errorf("invalid year range: %d is after %d", r.From, r.To)
	}
	return nil
}

func (r YearRange) String() string {
	return fmt.Sprintf("%d-%d", r.From, r.To)
}

// Filter returns the projects whose actual start year lies in bounds.
// Projects without an actual start date are dropped. The input is not modified.
func Filter(projects []dataset.Project, bounds YearRange) []dataset.Project {
	out := make([]dataset.Project, 0, len(projects))
	for _, p := range projects {
		if p.ActualStart.Valid && bounds.Contains(p.ActualStart.Year()) {
			out = append(out, p)
		}
	}
	return out
}

// Record is a filtered project with its derived region columns.
type Record struct {
	dataset.Project
	RegionKey     region.Key
	RegionName    string
	HasRegionName bool
}

// Category classifies the record's start.
func (r Record) Category() Category {
	return Classify(r.PlannedStart, r.ActualStart)
}

// Enrich copies each project and attaches its region key and display name.
func Enrich(projects []dataset.Project) []Record {
	out := make([]Record, len(projects))
	for i, p := range projects {
		p.Fields = maps.Clone(p.Fields)
		key := region.NormalizeString(p.Region)
		name, ok := region.DisplayName(key)
		out[i] = Record{
			Project:       p,
			RegionKey:     key,
			RegionName:    name,
			HasRegionName: ok,
		}
	}
	return out
}
