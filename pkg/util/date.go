package util

import (
	"strconv"
	"time"
)

var layouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04:05 -0700",
}

// ParseTime tries RFC3339 variants, plain dates, RSS pubDate formats and unix seconds.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
	if t, ok := ParseTime(s); ok {
		return t
	}
	return def
}

// DateID is the calendar date of t in its own location, YYYY-MM-DD.
func DateID(t time.Time) string {
	return t.Format("2006-01-02")
}

var (
	weekdaysEs = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}
	monthsEs   = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}
)

// LongDateEs renders "Sábado, 14 de febrero de 2026".
func LongDateEs(t time.Time) string {
	weekday := weekdaysEs[t.Weekday()]
	s := weekday + ", " + strconv.Itoa(t.Day()) + " de " + monthsEs[t.Month()-1] + " de " + strconv.Itoa(t.Year())
	return capitalize(s)
}

// LongDateEn renders "Saturday, February 14, 2026".
func LongDateEn(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	switch r[0] {
	case 'á':
		r[0] = 'Á'
	case 'é':
		r[0] = 'É'
	default:
		if r[0] >= 'a' && r[0] <= 'z' {
			r[0] -= 'a' - 'A'
		}
	}
	return string(r)
}
