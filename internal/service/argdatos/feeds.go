package argdatos

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"ArgPulse/internal/domain/models"
	"ArgPulse/pkg/cache"
	"ArgPulse/pkg/util"
)

const (
	pathDolares   = "/v1/cotizaciones/dolares"
	pathRisk      = "/v1/finanzas/indices/riesgo-pais/ultimo"
	pathInflation = "/v1/finanzas/indices/inflacion"
	pathReserves  = "/v1/finanzas/reservas"
	pathMerval    = "/v1/finanzas/indices/merval"

	historyPoints = 100
	indexPoints   = 30
)

type dolarDTO struct {
	Casa   string  `json:"casa"`
	Compra float64 `json:"compra"`
	Venta  float64 `json:"venta"`
	Fecha  string  `json:"fecha"`
}

type valorDTO struct {
	Fecha string  `json:"fecha"`
	Valor float64 `json:"valor"`
}

// ExchangeRates keeps the most recent quote of every casa.
func (c *Client) ExchangeRates(ctx context.Context) map[models.RateKind]models.ExchangeRate {
	rates, _ := cache.Remember(ctx, c.cache, key("rates"), c.ttl.Rates, func(ctx context.Context) (map[models.RateKind]models.ExchangeRate, bool) {
		var rows []dolarDTO
		if err := c.get(ctx, "rates", pathDolares, &rows); err != nil {
			return nil, false
		}
		out := latestRates(rows)
		return out, len(out) > 0
	})
	return rates
}

func latestRates(rows []dolarDTO) map[models.RateKind]models.ExchangeRate {
	out := make(map[models.RateKind]models.ExchangeRate)
	for _, r := range rows {
		if r.Casa == "" {
			continue
		}
		kind := models.RateKind(r.Casa)
		at, _ := util.ParseTime(r.Fecha)
		if cur, ok := out[kind]; ok && !at.After(cur.UpdatedAt) {
			continue
		}
		out[kind] = models.ExchangeRate{
			Buy:       r.Compra,
			Sell:      r.Venta,
			Name:      strings.ToUpper(r.Casa[:1]) + r.Casa[1:],
			UpdatedAt: at,
		}
	}
	return out
}

// CurrencyHistory returns the last sell quotes of one casa, oldest first.
func (c *Client) CurrencyHistory(ctx context.Context, kind models.RateKind) []models.SeriesPoint {
	points, _ := cache.Remember(ctx, c.cache, key("history", kind), c.ttl.History, func(ctx context.Context) ([]models.SeriesPoint, bool) {
		var rows []dolarDTO
		if err := c.get(ctx, "history", pathDolares, &rows); err != nil {
			return nil, false
		}
		var out []models.SeriesPoint
		for _, r := range rows {
			if models.RateKind(r.Casa) != kind {
				continue
			}
			at, ok := util.ParseTime(r.Fecha)
			if !ok {
				continue
			}
			out = append(out, models.SeriesPoint{Date: at, Value: r.Venta})
		}
		sortSeries(out)
		if len(out) > historyPoints {
			out = out[len(out)-historyPoints:]
		}
		return out, len(out) > 0
	})
	if points == nil {
		return []models.SeriesPoint{}
	}
	return points
}

func (c *Client) CountryRisk(ctx context.Context) *models.CountryRisk {
	risk, _ := cache.Remember(ctx, c.cache, key("risk"), c.ttl.Risk, func(ctx context.Context) (*models.CountryRisk, bool) {
		var row valorDTO
		if err := c.get(ctx, "risk", pathRisk, &row); err != nil {
			return nil, false
		}
		if row.Valor <= 0 {
			return nil, false
		}
		return &models.CountryRisk{Value: row.Valor, UpdatedAt: util.ParseTimeDefault(row.Fecha, time.Time{})}, true
	})
	return risk
}

// InflationSeries returns monthly CPI readings in chronological order.
func (c *Client) InflationSeries(ctx context.Context) []models.InflationPoint {
	series, _ := cache.Remember(ctx, c.cache, key("inflation"), c.ttl.Inflation, func(ctx context.Context) ([]models.InflationPoint, bool) {
		var rows []valorDTO
		if err := c.get(ctx, "inflation", pathInflation, &rows); err != nil {
			return nil, false
		}
		out := make([]models.InflationPoint, 0, len(rows))
		for _, r := range rows {
			at, ok := util.ParseTime(r.Fecha)
			if !ok {
				continue
			}
			out = append(out, models.InflationPoint{Date: at, Value: r.Valor})
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
		return out, len(out) > 0
	})
	return series
}

// Reserves returns the latest gross reserves reading in millions of USD.
func (c *Client) Reserves(ctx context.Context) *models.Reserves {
	res, _ := cache.Remember(ctx, c.cache, key("reserves"), c.ttl.Reserves, func(ctx context.Context) (*models.Reserves, bool) {
		var rows []valorDTO
		if err := c.get(ctx, "reserves", pathReserves, &rows); err != nil {
			return nil, false
		}
		series := toSeries(rows)
		if len(series) == 0 {
			return nil, false
		}
		last := series[len(series)-1]
		return &models.Reserves{Value: last.Value, UpdatedAt: last.Date}, true
	})
	return res
}

// MarketIndices returns the MERVAL with its daily change and the configured
// ADR list. A failed index fetch yields nil rather than a stale guess.
func (c *Client) MarketIndices(ctx context.Context) *models.MarketIndices {
	idx, _ := cache.Remember(ctx, c.cache, key("merval"), c.ttl.Markets, func(ctx context.Context) (*models.MainIndex, bool) {
		var rows []valorDTO
		if err := c.get(ctx, "merval", pathMerval, &rows); err != nil {
			return nil, false
		}
		m := mainIndex(toSeries(rows))
		return m, m != nil
	})
	if idx == nil {
		return nil
	}
	return &models.MarketIndices{MainIndex: idx, ADRs: c.adrs}
}

func mainIndex(series []models.SeriesPoint) *models.MainIndex {
	if len(series) == 0 {
		return nil
	}
	latest := math.Round(series[len(series)-1].Value)
	m := &models.MainIndex{Value: latest, Trend: models.TrendNeutral}

	if len(series) > 1 {
		if prev := series[len(series)-2].Value; prev != 0 {
			pct := (latest - prev) / prev * 100
			m.Change = util.SignedPercent(pct)
			m.Trend = models.TrendUp
			if pct < 0 {
				m.Trend = models.TrendDown
			}
		}
	}

	tail := series
	if len(tail) > indexPoints {
		tail = tail[len(tail)-indexPoints:]
	}
	m.History = make([]models.SeriesPoint, len(tail))
	for i, p := range tail {
		m.History[i] = models.SeriesPoint{Date: p.Date, Value: math.Round(p.Value)}
	}
	return m
}

func toSeries(rows []valorDTO) []models.SeriesPoint {
	out := make([]models.SeriesPoint, 0, len(rows))
	for _, r := range rows {
		at, ok := util.ParseTime(r.Fecha)
		if !ok {
			continue
		}
		out = append(out, models.SeriesPoint{Date: at, Value: r.Valor})
	}
	sortSeries(out)
	return out
}

func sortSeries(s []models.SeriesPoint) {
	sort.SliceStable(s, func(i, j int) bool { return s[i].Date.Before(s[j].Date) })
}
