package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   float64
		loc  Locale
		want string
	}{
		{1300, LocaleEs, "1.300"},
		{1300, LocaleEn, "1,300"},
		{1254300, LocaleEs, "1.254.300"},
		{1254300, LocaleEn, "1,254,300"},
		{1300.5, LocaleEs, "1.300,5"},
		{1300.5, LocaleEn, "1,300.5"},
		{999, LocaleEs, "999"},
		{0.1234, LocaleEn, "0.123"},
		{-1500, LocaleEn, "-1,500"},
		{519, LocaleEn, "519"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatNumber(tc.in, tc.loc), "%v %s", tc.in, tc.loc)
	}
}

func TestRoundingHelpers(t *testing.T) {
	assert.Equal(t, "30.0", Fixed1(30))
	assert.Equal(t, "+1.2%", SignedPercent(1.2))
	assert.Equal(t, "-0.5%", SignedPercent(-0.5))
	assert.Equal(t, "+0.0%", SignedPercent(0))
}
