package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"ArgPulse/internal/domain/models"
	domrepo "ArgPulse/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_Pulse(t *testing.T) {
	m := &countingMetrics{}
	uc := newDashboard(&fakeSource{snapshot: fullSnapshot()}, &memHistory{}, m)

	res := uc.Pulse(context.Background())
	assert.False(t, res.Degraded())
	assert.Equal(t, "10:30:00", res.LastUpdated)
	assert.Empty(t, m.fallbacks)
}

func TestDashboard_PulseFallbackIsRecorded(t *testing.T) {
	m := &countingMetrics{}
	snap := fullSnapshot()
	snap.CountryRisk = nil
	uc := newDashboard(&fakeSource{snapshot: snap}, &memHistory{}, m)

	res := uc.Pulse(context.Background())
	assert.Equal(t, 45.0, res.Score)
	assert.Equal(t, []string{models.FallbackMissingLeg}, m.fallbacks)
}

func TestDashboard_Snapshot(t *testing.T) {
	src := &fakeSource{
		snapshot: fullSnapshot(),
		history: map[models.RateKind][]models.SeriesPoint{
			models.RateBlue: {
				{Date: time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC), Value: 1250},
				{Date: time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC), Value: 1300},
			},
		},
	}
	view := newDashboard(src, &memHistory{}, &countingMetrics{}).Snapshot(context.Background())

	require.Len(t, view.Trends, 2)
	assert.Equal(t, "Dólar Blue", view.Trends[0].Label)
	assert.Equal(t, models.TrendUp, view.Trends[0].Trend)
	assert.Equal(t, "MERVAL", view.Trends[1].Label)
	assert.NotNil(t, view.Snapshot.CountryRisk)
}

func TestDashboard_History(t *testing.T) {
	hist := &memHistory{posts: []models.DailyAnalysisPost{
		{ID: "2026-02-12", Date: time.Date(2026, 2, 12, 10, 0, 0, 0, ArgentinaTime), Sentiment: models.SentimentBearish},
		{ID: "2026-02-14", Date: time.Date(2026, 2, 14, 0, 5, 0, 0, ArgentinaTime), Sentiment: models.SentimentBearish},
		{ID: "2026-02-13", Date: time.Date(2026, 2, 13, 10, 0, 0, 0, ArgentinaTime), Sentiment: models.SentimentBullish},
	}}
	uc := newDashboard(&fakeSource{snapshot: fullSnapshot()}, hist, &countingMetrics{})
	ctx := context.Background()

	all := uc.History(ctx, models.HistoryRequest{Limit: 30})
	require.Len(t, all, 3)
	assert.Equal(t, "2026-02-14", all[0].ID)
	assert.NotEqual(t, models.SentimentBearish, all[0].Sentiment, "today's live post replaces the archived copy")
	assert.Equal(t, "2026-02-13", all[1].ID)
	assert.Equal(t, "2026-02-12", all[2].ID)

	bearish := uc.History(ctx, models.HistoryRequest{Sentiment: "bearish", Limit: 30})
	require.Len(t, bearish, 1)
	assert.Equal(t, "2026-02-12", bearish[0].ID)

	assert.Len(t, uc.History(ctx, models.HistoryRequest{Limit: 1}), 1)
}

func TestDashboard_HistoryUnavailable(t *testing.T) {
	m := &countingMetrics{}
	uc := newDashboard(&fakeSource{snapshot: fullSnapshot()}, &memHistory{err: errors.New("disk")}, m)

	posts := uc.History(context.Background(), models.HistoryRequest{Limit: 30})
	require.Len(t, posts, 1)
	assert.Equal(t, "2026-02-14", posts[0].ID)
	assert.Equal(t, []string{"history_list"}, m.errors)
}

func TestDashboard_GetPost(t *testing.T) {
	hist := &memHistory{posts: []models.DailyAnalysisPost{{ID: "2026-02-10", Sentiment: models.SentimentMixed}}}
	uc := newDashboard(&fakeSource{snapshot: fullSnapshot()}, hist, &countingMetrics{})
	ctx := context.Background()

	today, err := uc.GetPost(ctx, "2026-02-14")
	require.NoError(t, err)
	assert.Equal(t, "Sábado, 14 de febrero de 2026", today.DateFormatted)

	old, err := uc.GetPost(ctx, "2026-02-10")
	require.NoError(t, err)
	assert.Equal(t, models.SentimentMixed, old.Sentiment)

	_, err = uc.GetPost(ctx, "2025-01-01")
	assert.ErrorIs(t, err, domrepo.ErrPostNotFound)
}

func TestDashboard_Convert(t *testing.T) {
	uc := newDashboard(&fakeSource{snapshot: fullSnapshot()}, &memHistory{}, &countingMetrics{})

	got := uc.Convert(context.Background(), models.ConvertRequest{Amount: 100, Direction: string(models.USDToARS)})
	require.Len(t, got, 2)
	assert.Equal(t, 100000.0, got[0].Result)
	assert.Equal(t, 130000.0, got[1].Result)
}
