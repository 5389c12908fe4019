package narrative

import (
	"strconv"

	"ArgPulse/internal/domain/models"
	"ArgPulse/pkg/util"
)

// value is an optional number; absent facts never reach a template.
type value struct {
	v  float64
	ok bool
}

func some(v float64) value { return value{v: v, ok: true} }

// spread holds a percentage gap rounded to one decimal. Thresholds read the
// rounded number so the label and the classification always agree.
type spread struct {
	label string
	v     float64
	ok    bool
}

type facts struct {
	blue      value
	oficial   value
	mep       value
	risk      value
	reserves  value // millions of USD
	inflation value
	index     *models.MainIndex
	trend     models.Trend

	blueSpread spread
	mepSpread  spread
}

func extractFacts(s models.RawIndicatorSnapshot) facts {
	f := facts{trend: models.TrendNeutral}

	if v, ok := s.SellRate(models.RateBlue); ok {
		f.blue = some(v)
	}
	if v, ok := s.SellRate(models.RateOficial); ok {
		f.oficial = some(v)
	}
	if v, ok := s.SellRate(models.RateMEP); ok {
		f.mep = some(v)
	}
	if s.CountryRisk != nil {
		f.risk = some(s.CountryRisk.Value)
	}
	if s.Reserves != nil && s.Reserves.Value > 0 {
		f.reserves = some(s.Reserves.Value)
	}
	if v, ok := s.LatestInflation(); ok {
		f.inflation = some(v)
	}
	if idx := s.MainIndexOrNil(); idx != nil {
		f.index = idx
		if idx.Trend != "" {
			f.trend = idx.Trend
		}
	}

	f.blueSpread = spreadOf(f.blue, f.oficial)
	f.mepSpread = spreadOf(f.mep, f.oficial)
	return f
}

func spreadOf(rate, oficial value) spread {
	if !rate.ok || !oficial.ok {
		return spread{}
	}
	label := util.Fixed1((rate.v - oficial.v) / oficial.v * 100)
	v, err := strconv.ParseFloat(label, 64)
	if err != nil {
		return spread{}
	}
	return spread{label: label, v: v, ok: true}
}

// reservesBn renders reserves in billions with one decimal.
func (f *facts) reservesBn() string {
	return util.Fixed1(f.reserves.v / 1000)
}

func (f *facts) inflationPct() string {
	return util.Fixed1(f.inflation.v) + "%"
}

func (f *facts) hasIndexValue() bool {
	return f.index != nil && f.index.Value != 0
}

func (f *facts) indexChange() string {
	if f.index == nil {
		return ""
	}
	return f.index.Change
}

// votes counts the four threshold rules. Each rule votes at most once.
func (f *facts) votes() (bullish, bearish int) {
	if f.risk.ok {
		switch {
		case f.risk.v < 600:
			bullish++
		case f.risk.v > 900:
			bearish++
		}
	}
	switch f.trend {
	case models.TrendUp:
		bullish++
	case models.TrendDown:
		bearish++
	}
	if f.inflation.ok {
		switch {
		case f.inflation.v < 3:
			bullish++
		case f.inflation.v > 6:
			bearish++
		}
	}
	if f.blueSpread.ok {
		switch {
		case f.blueSpread.v < 20:
			bullish++
		case f.blueSpread.v > 50:
			bearish++
		}
	}
	return bullish, bearish
}

// classify needs a two-vote lead for a directional call. An exact tie is
// neutral and a one-vote lead is mixed.
func classify(bullish, bearish int) models.Sentiment {
	switch {
	case bullish > bearish+1:
		return models.SentimentBullish
	case bearish > bullish+1:
		return models.SentimentBearish
	case bullish == bearish:
		return models.SentimentNeutral
	default:
		return models.SentimentMixed
	}
}

func riskLevel(bearish int) models.RiskLevel {
	switch {
	case bearish >= 3:
		return models.RiskHigh
	case bearish >= 2:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

func money(v float64, loc util.Locale) string {
	return "$" + util.FormatNumber(v, loc)
}
