package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"opencoesione/internal/region"
	"opencoesione/internal/timeliness"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func summary(onTime, delayed, early int) timeliness.Summary {
	return timeliness.Summary{
		Range: timeliness.DefaultRange,
		Counts: map[timeliness.Category]int{
			timeliness.OnTime:  onTime,
			timeliness.Delayed: delayed,
			timeliness.Early:   early,
		},
		Regions: []timeliness.RegionRow{
			{Key: region.Lombardia, Name: "Lombardia", Known: true, Counts: map[timeliness.Category]int{timeliness.OnTime: onTime, timeliness.Delayed: delayed}},
			{Key: region.Sicilia, Name: "Sicilia", Known: true, Counts: map[timeliness.Category]int{timeliness.Early: early}},
		},
	}
}

func TestPercentages(t *testing.T) {
	assert.Equal(t, []int{46, 33, 21}, Percentages([]int{1284, 908, 580}))
	assert.Equal(t, []int{33, 33, 33}, Percentages([]int{1, 1, 1}))
	assert.Equal(t, []int{100, 0, 0}, Percentages([]int{7, 0, 0}))
	assert.Nil(t, Percentages([]int{0, 0, 0}))
	assert.Nil(t, Percentages(nil))
}

func TestPercentages_SumNear100(t *testing.T) {
	for a := 0; a < 15; a++ {
		for b := 0; b < 15; b++ {
			for c := 0; c < 15; c++ {
				pct := Percentages([]int{a, b, c})
				if a+b+c == 0 {
					assert.Nil(t, pct)
					continue
				}
				sum := pct[0] + pct[1] + pct[2]
				assert.InDelta(t, 100, sum, 1, "counts %d %d %d", a, b, c)
			}
		}
	}
}

func TestTimelinessSlices(t *testing.T) {
	slices := TimelinessSlices(summary(5, 3, 2))

	require.Len(t, slices, 3)
	assert.Equal(t, "On Time", slices[0].Label)
	assert.Equal(t, 5, slices[0].Value)
	assert.Equal(t, "Delayed", slices[1].Label)
	assert.Equal(t, "Early", slices[2].Label)
	assert.Equal(t, Palette[timeliness.Early], slices[2].Color)
}

func TestTimelinessPie_RendersPNG(t *testing.T) {
	p := TimelinessPie(summary(1284, 908, 580))

	var buf bytes.Buffer
	require.NoError(t, Render(p, Width, Height, "png", &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestTimelinessPie_ZeroTotalRenders(t *testing.T) {
	p := TimelinessPie(summary(0, 0, 0))

	var buf bytes.Buffer
	require.NoError(t, Render(p, Width, Height, "svg", &buf))
	assert.Contains(t, buf.String(), "No data")
}

func TestTimelinessPie_CenterTotal(t *testing.T) {
	p := TimelinessPie(summary(2, 1, 1))

	var buf bytes.Buffer
	require.NoError(t, Render(p, Width, Height, "svg", &buf))
	assert.Contains(t, buf.String(), "Total: 4")
	assert.Contains(t, buf.String(), "50%")
}

func TestNewPie_Total(t *testing.T) {
	pie := NewPie([]Slice{{Value: 2}, {Value: 3}})
	assert.Equal(t, 5, pie.Total())
	assert.Len(t, pie.Thumbnails(), 2)
	assert.InDelta(t, 0.7, pie.RingWidth, 1e-9)
}

func TestRegionBars(t *testing.T) {
	p, err := RegionBars(summary(4, 2, 1))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(p, Width, Height, "png", &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRegionBars_NoRegions(t *testing.T) {
	p, err := RegionBars(timeliness.Summary{Range: timeliness.DefaultRange})
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, Render(p, Width, Height, "png", &buf))
}

func TestSave_ByExtension(t *testing.T) {
	dir := t.TempDir()
	p := TimelinessPie(summary(3, 2, 1))

	for _, name := range []string{"pie.png", "pie.svg", "pie.pdf"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(p, Width, Height, path))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}
