package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Cfg is the global configuration loaded at startup.
var Cfg Config

// Config holds all report configuration.
type Config struct {
	// Input
	InputPath string
	Delimiter string
	Sheet     string

	// Time window on the actual project start year
	StartYear int
	EndYear   int

	// Output
	OutputDir       string
	ChartFormat     string
	XLSXEnabled     bool
	PDFEnabled      bool
	MarkdownEnabled bool

	// Logging
	LogLevel string

	// Sentry
	SentryDSN         string
	SentryEnvironment string
	SentryRelease     string
}

// Load reads .env (if present) and populates Cfg from environment variables.
// The returned error only describes the .env read; Cfg is always set.
func Load(files ...string) error {
	err := godotenv.Load(files...)
	Cfg = FromEnv()
	return err
}

// FromEnv builds a Config from the current environment without touching .env.
func FromEnv() Config {
	return Config{
		InputPath: envOr("OC_INPUT", "open_coesione.csv"),
		Delimiter: os.Getenv("OC_DELIMITER"),
		Sheet:     os.Getenv("OC_SHEET"),

		StartYear: envInt("OC_START_YEAR", 2014),
		EndYear:   envInt("OC_END_YEAR", 2024),

		OutputDir:       envOr("OC_OUTPUT_DIR", "."),
		ChartFormat:     strings.ToLower(envOr("OC_CHART_FORMAT", "png")),
		XLSXEnabled:     envBool("OC_XLSX_ENABLED", true),
		PDFEnabled:      envBool("OC_PDF_ENABLED", true),
		MarkdownEnabled: envBool("OC_MARKDOWN_ENABLED", true),

		LogLevel: envOr("LOG_LEVEL", "info"),

		SentryDSN:         os.Getenv("SENTRY_DSN"),
		SentryEnvironment: envOr("SENTRY_ENVIRONMENT", "local"),
		SentryRelease:     envOr("SENTRY_RELEASE", "opencoesione@0.1.0"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
