package util

import (
	"math"
	"strconv"
	"strings"
)

// Locale selects digit grouping conventions.
type Locale string

const (
	LocaleEs Locale = "es-AR" // 1.254.300,5
	LocaleEn Locale = "en-US" // 1,254,300.5
)

// FormatNumber groups thousands and keeps up to three fraction digits, trailing zeros trimmed.
func FormatNumber(v float64, loc Locale) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	neg := v < 0
	v = math.Abs(v)
	s := strconv.FormatFloat(math.Round(v*1000)/1000, 'f', 3, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	frac = strings.TrimRight(frac, "0")

	groupSep, decSep := ",", "."
	if loc == LocaleEs {
		groupSep, decSep = ".", ","
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(groupSep)
		b.WriteString(intPart[i : i+3])
	}
	if frac != "" {
		b.WriteString(decSep)
		b.WriteString(frac)
	}
	return b.String()
}

// Fixed1 renders v with exactly one decimal, like a percentage label.
func Fixed1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// SignedPercent renders "+1.2%" / "-0.5%".
func SignedPercent(v float64) string {
	sign := ""
	if v >= 0 {
		sign = "+"
	}
	return sign + Fixed1(v) + "%"
}
