package models

import (
	"sort"
	"time"
)

// RateKind is the upstream "casa" of an exchange rate quote.
type RateKind string

const (
	RateOficial RateKind = "oficial"
	RateBlue    RateKind = "blue"
	RateMEP     RateKind = "bolsa"
	RateCCL     RateKind = "contadoconliqui"
)

type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

type ExchangeRate struct {
	Buy       float64   `json:"buy"`
	Sell      float64   `json:"sell"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CountryRisk struct {
	Value     float64   `json:"value"` // basis points
	UpdatedAt time.Time `json:"updatedAt"`
}

type InflationPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"` // monthly percent
}

type Reserves struct {
	Value     float64   `json:"value"` // millions of USD
	UpdatedAt time.Time `json:"updatedAt"`
}

// SeriesPoint is one observation of a chartable series.
type SeriesPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

type MainIndex struct {
	Value   float64       `json:"value"`
	Change  string        `json:"change"`
	Trend   Trend         `json:"trend"`
	History []SeriesPoint `json:"history,omitempty"`
}

type ADRQuote struct {
	Ticker string  `json:"ticker"`
	Price  float64 `json:"price"`
	Change string  `json:"change"`
	Trend  Trend   `json:"trend"`
}

type MarketIndices struct {
	MainIndex *MainIndex `json:"mainIndex,omitempty"`
	ADRs      []ADRQuote `json:"adrList"`
}

// RawIndicatorSnapshot is everything the engines read. Every field may be absent;
// absence is the normal case when an upstream feed is down.
type RawIndicatorSnapshot struct {
	ExchangeRates   map[RateKind]ExchangeRate `json:"exchangeRates,omitempty"`
	CountryRisk     *CountryRisk              `json:"countryRisk,omitempty"`
	InflationSeries []InflationPoint          `json:"inflationSeries,omitempty"`
	Reserves        *Reserves                 `json:"reserves,omitempty"`
	Markets         *MarketIndices            `json:"marketIndices,omitempty"`
}

// SellRate returns the sell price for kind when it is present and positive.
func (s *RawIndicatorSnapshot) SellRate(kind RateKind) (float64, bool) {
	if s == nil || s.ExchangeRates == nil {
		return 0, false
	}
	r, ok := s.ExchangeRates[kind]
	if !ok || r.Sell <= 0 {
		return 0, false
	}
	return r.Sell, true
}

// LatestInflation returns the chronologically last reading.
func (s *RawIndicatorSnapshot) LatestInflation() (float64, bool) {
	if s == nil || len(s.InflationSeries) == 0 {
		return 0, false
	}
	series := make([]InflationPoint, len(s.InflationSeries))
	copy(series, s.InflationSeries)
	sort.SliceStable(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series[len(series)-1].Value, true
}

// MainIndexOrNil returns the main equity index if markets were fetched.
func (s *RawIndicatorSnapshot) MainIndexOrNil() *MainIndex {
	if s == nil || s.Markets == nil {
		return nil
	}
	return s.Markets.MainIndex
}
