package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_Layouts(t *testing.T) {
	for _, in := range []string{"2016-04-05", "20160405", "05/04/2016", "2016-04-05 10:30:00", "2016-04-05T10:30:00+02:00"} {
		d, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.True(t, d.Valid, in)
		assert.Equal(t, 2016, d.Year(), in)
		assert.Equal(t, time.April, d.Time.Month(), in)
	}
}

func TestParseDate_BlankIsMissing(t *testing.T) {
	d, err := ParseDate("   ")
	require.NoError(t, err)
	assert.False(t, d.Valid)
	assert.Equal(t, 0, d.Year())
	assert.Equal(t, "", d.String())
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("2016-13-45")
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1.234.567,89", 1234567.89, true},
		{"1234,5", 1234.5, true},
		{"1234.5", 1234.5, true},
		{"€ 2.000,00", 2000, true},
		{"1.234.567", 1234567, true},
		{"2.000", 2000, true},
		{"1.234 €", 1234, true},
		{"-12.500", -12500, true},
		{"1.5", 1.5, true},
		{"12.3456", 12.3456, true},
		{"", 0, false},
		{"n.d.", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseAmount(c.in)
		assert.Equal(t, c.ok, ok, c.in)
		assert.InDelta(t, c.want, got, 0.001, c.in)
	}
}
