package usecase

import (
	"context"
	"sync"
	"time"

	"ArgPulse/internal/domain/models"
	domrepo "ArgPulse/internal/domain/repository"
	"ArgPulse/internal/services/narrative"
	"ArgPulse/internal/services/pulse"
)

var asOf = time.Date(2026, 2, 14, 10, 30, 0, 0, ArgentinaTime)

type fakeSource struct {
	snapshot models.RawIndicatorSnapshot
	history  map[models.RateKind][]models.SeriesPoint
}

func (f *fakeSource) ExchangeRates(context.Context) map[models.RateKind]models.ExchangeRate {
	return f.snapshot.ExchangeRates
}

func (f *fakeSource) CurrencyHistory(_ context.Context, kind models.RateKind) []models.SeriesPoint {
	return f.history[kind]
}

func (f *fakeSource) CountryRisk(context.Context) *models.CountryRisk { return f.snapshot.CountryRisk }

func (f *fakeSource) InflationSeries(context.Context) []models.InflationPoint {
	return f.snapshot.InflationSeries
}

func (f *fakeSource) Reserves(context.Context) *models.Reserves { return f.snapshot.Reserves }

func (f *fakeSource) MarketIndices(context.Context) *models.MarketIndices { return f.snapshot.Markets }

func (f *fakeSource) Snapshot(context.Context) models.RawIndicatorSnapshot { return f.snapshot }

type fakeNews struct{ items []models.NewsItem }

func (f fakeNews) Latest(context.Context) []models.NewsItem { return f.items }

type memHistory struct {
	mu    sync.Mutex
	posts []models.DailyAnalysisPost
	err   error
}

func (m *memHistory) Init(context.Context) error { return nil }

func (m *memHistory) List(context.Context) ([]models.DailyAnalysisPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]models.DailyAnalysisPost(nil), m.posts...), nil
}

func (m *memHistory) Get(_ context.Context, id string) (*models.DailyAnalysisPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.posts {
		if m.posts[i].ID == id {
			p := m.posts[i]
			return &p, nil
		}
	}
	return nil, domrepo.ErrPostNotFound
}

func (m *memHistory) Append(_ context.Context, post models.DailyAnalysisPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.posts {
		if p.ID == post.ID {
			return nil
		}
	}
	m.posts = append(m.posts, post)
	return nil
}

func (m *memHistory) Close() error { return nil }

type recordingPublisher struct{ posts []models.DailyAnalysisPost }

func (r *recordingPublisher) PublishPost(_ context.Context, p models.DailyAnalysisPost) error {
	r.posts = append(r.posts, p)
	return nil
}

func (r *recordingPublisher) Close() error { return nil }

type countingMetrics struct {
	mu        sync.Mutex
	fallbacks []string
	posts     []string
	errors    []string
}

func (c *countingMetrics) RecordPulseScore(float64) {}
func (c *countingMetrics) RecordFallback(reason string) {
	c.mu.Lock()
	c.fallbacks = append(c.fallbacks, reason)
	c.mu.Unlock()
}
func (c *countingMetrics) RecordPostGenerated(s string) {
	c.mu.Lock()
	c.posts = append(c.posts, s)
	c.mu.Unlock()
}
func (c *countingMetrics) RecordUpstream(string, float64, bool) {}
func (c *countingMetrics) RecordError(kind string) {
	c.mu.Lock()
	c.errors = append(c.errors, kind)
	c.mu.Unlock()
}
func (c *countingMetrics) RecordLatency(string, float64) {}

func fullSnapshot() models.RawIndicatorSnapshot {
	return models.RawIndicatorSnapshot{
		ExchangeRates: map[models.RateKind]models.ExchangeRate{
			models.RateOficial: {Sell: 1000, Name: "Oficial"},
			models.RateBlue:    {Sell: 1300, Name: "Blue"},
		},
		CountryRisk:     &models.CountryRisk{Value: 519},
		InflationSeries: []models.InflationPoint{{Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Value: 2.9}},
		Reserves:        &models.Reserves{Value: 29500},
		Markets: &models.MarketIndices{MainIndex: &models.MainIndex{
			Value: 2024000, Change: "+1.2%", Trend: models.TrendUp,
			History: []models.SeriesPoint{
				{Date: time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC), Value: 2000000},
				{Date: time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC), Value: 2024000},
			},
		}},
	}
}

func newDashboard(src *fakeSource, hist *memHistory, m *countingMetrics) *DashboardUseCase {
	uc := NewDashboardUseCase(src, fakeNews{}, hist, pulse.NewEngine(), narrative.NewEngine(), m, nil)
	uc.now = func() time.Time { return asOf }
	return uc
}
