package dataset

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Date is a calendar date that may be missing, the way an empty cell is.
type Date struct {
	Time  time.Time
	Valid bool
}

// NewDate returns a valid Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), Valid: true}
}

// Year returns the calendar year, or 0 for a missing date.
func (d Date) Year() int {
	if !d.Valid {
		return 0
	}
	return d.Time.Year()
}

func (d Date) String() string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format("2006-01-02")
}

var dateLayouts = []string{
	"2006-01-02",
	"20060102",
	"02/01/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

var errBadDate = errors.New("unrecognized date layout")

// ParseDate parses the date formats found in OpenCoesione exports.
// Blank text yields a missing Date and no error.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t, Valid: true}, nil
		}
	}
	return Date{}, errBadDate
}

// parseSerialDate handles raw spreadsheet cells, where dates are day serials.
func parseSerialDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) == 8 && allDigits(s) {
		return ParseDate(s)
	}
	serial, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ParseDate(s)
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t, Valid: true}, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Whole amounts grouped by thousands, e.g. 1.234.567.
var thousandsOnly = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+$`)

// ParseAmount reads a euro amount written either as 1234.56 or in Italian
// notation (1.234,56 € or 1.234 €). A single dot followed by exactly three
// digits is a thousands separator. The second result is false for blank or
// invalid text.
func ParseAmount(s string) (float64, bool) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.ReplaceAll(s, "€", "")
	if s == "" {
		return 0, false
	}
	switch {
	case strings.Contains(s, ",") && strings.Contains(s, "."):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case thousandsOnly.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	default:
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
