package argdatos

import (
	"context"
	"sync"
	"time"

	"ArgPulse/internal/domain/models"
	"ArgPulse/pkg/logger"
)

// Snapshot fetches the five feeds concurrently. Each goroutine owns one
// field, so no locking is needed before Wait returns.
func (c *Client) Snapshot(ctx context.Context) models.RawIndicatorSnapshot {
	start := time.Now()
	var (
		s  models.RawIndicatorSnapshot
		wg sync.WaitGroup
	)
	wg.Add(5)
	go func() { defer wg.Done(); s.ExchangeRates = c.ExchangeRates(ctx) }()
	go func() { defer wg.Done(); s.CountryRisk = c.CountryRisk(ctx) }()
	go func() { defer wg.Done(); s.InflationSeries = c.InflationSeries(ctx) }()
	go func() { defer wg.Done(); s.Reserves = c.Reserves(ctx) }()
	go func() { defer wg.Done(); s.Markets = c.MarketIndices(ctx) }()
	wg.Wait()

	c.metrics.RecordLatency("snapshot", time.Since(start).Seconds())
	c.log.Debug("snapshot assembled",
		logger.Int("rates", len(s.ExchangeRates)),
		logger.Bool("risk", s.CountryRisk != nil),
		logger.Int("inflation_points", len(s.InflationSeries)),
		logger.Bool("reserves", s.Reserves != nil),
		logger.Bool("markets", s.Markets != nil),
		logger.Duration("elapsed_ms", time.Since(start)))
	return s
}
