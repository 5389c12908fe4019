package repository

import (
	"context"
	"errors"

	"ArgPulse/internal/domain/models"
)

var (
	ErrPostNotFound = errors.New("analysis post not found")
	ErrAlreadyVoted = errors.New("voter already voted")
	ErrInvalidVote  = errors.New("unknown poll option")
)

// IndicatorSource fetches upstream feeds. Methods never fail: an unavailable
// feed resolves to nil or an empty slice.
type IndicatorSource interface {
	ExchangeRates(ctx context.Context) map[models.RateKind]models.ExchangeRate
	CurrencyHistory(ctx context.Context, kind models.RateKind) []models.SeriesPoint
	CountryRisk(ctx context.Context) *models.CountryRisk
	InflationSeries(ctx context.Context) []models.InflationPoint
	Reserves(ctx context.Context) *models.Reserves
	MarketIndices(ctx context.Context) *models.MarketIndices
	Snapshot(ctx context.Context) models.RawIndicatorSnapshot
}

type NewsSource interface {
	Latest(ctx context.Context) []models.NewsItem
}

// HistoryStore is the append-only archive of past daily posts.
type HistoryStore interface {
	Init(ctx context.Context) error
	List(ctx context.Context) ([]models.DailyAnalysisPost, error)
	Get(ctx context.Context, id string) (*models.DailyAnalysisPost, error)
	// Append is idempotent by post ID.
	Append(ctx context.Context, post models.DailyAnalysisPost) error
	Close() error
}

type PostPublisher interface {
	PublishPost(ctx context.Context, post models.DailyAnalysisPost) error
	Close() error
}

type PollStore interface {
	Counts(ctx context.Context) (map[string]int64, error)
	Vote(ctx context.Context, option, voterID string) error
}

type Metrics interface {
	RecordPulseScore(score float64)
	RecordFallback(reason string)
	RecordPostGenerated(sentiment string)
	RecordUpstream(feed string, seconds float64, ok bool)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
