package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"OC_INPUT", "OC_START_YEAR", "OC_END_YEAR", "OC_CHART_FORMAT", "OC_PDF_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	assert.Equal(t, "open_coesione.csv", cfg.InputPath)
	assert.Equal(t, 2014, cfg.StartYear)
	assert.Equal(t, 2024, cfg.EndYear)
	assert.Equal(t, "png", cfg.ChartFormat)
	assert.True(t, cfg.PDFEnabled)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("OC_INPUT", "progetti.csv")
	t.Setenv("OC_START_YEAR", "2016")
	t.Setenv("OC_END_YEAR", "2020")
	t.Setenv("OC_CHART_FORMAT", "SVG")
	t.Setenv("OC_PDF_ENABLED", "false")

	cfg := FromEnv()
	assert.Equal(t, "progetti.csv", cfg.InputPath)
	assert.Equal(t, 2016, cfg.StartYear)
	assert.Equal(t, 2020, cfg.EndYear)
	assert.Equal(t, "svg", cfg.ChartFormat)
	assert.False(t, cfg.PDFEnabled)
}

func TestFromEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("OC_START_YEAR", "duemilaquattordici")
	t.Setenv("OC_XLSX_ENABLED", "forse")

	cfg := FromEnv()
	assert.Equal(t, 2014, cfg.StartYear)
	assert.True(t, cfg.XLSXEnabled)
}

func TestLoad_DotEnv(t *testing.T) {
	if _, set := os.LookupEnv("OC_SHEET"); set {
		t.Skip("OC_SHEET set in the environment")
	}
	t.Cleanup(func() { os.Unsetenv("OC_SHEET") })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("OC_SHEET=Progetti\n"), 0o644))

	require.NoError(t, Load(path))
	assert.Equal(t, "Progetti", Cfg.Sheet)
}

func TestLoad_MissingDotEnvStillSetsConfig(t *testing.T) {
	t.Setenv("OC_END_YEAR", "2022")

	err := Load(filepath.Join(t.TempDir(), ".env"))

	assert.Error(t, err)
	assert.Equal(t, 2022, Cfg.EndYear)
}
