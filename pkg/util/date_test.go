package util

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	require.True(t, ok)
	assert.Equal(t, s, got.UTC().Format(time.RFC3339))
}

func TestParseTimePlainDate(t *testing.T) {
	got, ok := ParseTime("2026-02-13")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC), got)
}

func TestParseTimeRSSPubDate(t *testing.T) {
	got, ok := ParseTime("Fri, 13 Feb 2026 18:30:00 -0300")
	require.True(t, ok)
	assert.Equal(t, 21, got.UTC().Hour())
}

func TestParseTimeSingleDigitDay(t *testing.T) {
	want := time.Date(2026, 2, 4, 9, 0, 0, 0, time.UTC)
	for _, s := range []string{
		"Wed, 4 Feb 2026 09:00:00 +0000",
		"Wed, 4 Feb 2026 09:00:00 GMT",
		"4 Feb 2026 09:00:00 +0000",
	} {
		got, ok := ParseTime(s)
		require.True(t, ok, s)
		assert.True(t, got.Equal(want), s)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	require.True(t, ok)
	assert.Equal(t, ts, got.Unix())
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
	assert.True(t, ParseTimeDefault("", def).Equal(def))
	assert.True(t, ParseTimeDefault("garbage", def).Equal(def))
}

func TestLongDates(t *testing.T) {
	d := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "Sábado, 14 de febrero de 2026", LongDateEs(d))
	assert.Equal(t, "Saturday, February 14, 2026", LongDateEn(d))
	assert.Equal(t, "Miércoles, 1 de abril de 2026", LongDateEs(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2026-02-14", DateID(d))
}
