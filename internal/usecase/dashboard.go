package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ArgPulse/internal/domain/models"
	domrepo "ArgPulse/internal/domain/repository"
	domsvc "ArgPulse/internal/domain/service"
	"ArgPulse/internal/services/trends"
	applogger "ArgPulse/pkg/logger"
	"ArgPulse/pkg/metrics"
	"ArgPulse/pkg/util"
)

// ArgentinaTime is the as-of zone for scores and posts. Argentina has no DST.
var ArgentinaTime = time.FixedZone("ART", -3*60*60)

// DashboardUseCase serves every read of the dashboard. Each call fetches a
// fresh snapshot through the cached indicator source and runs the engines.
type DashboardUseCase struct {
	source    domrepo.IndicatorSource
	news      domrepo.NewsSource
	history   domrepo.HistoryStore
	score     domsvc.ScoreEngine
	narrative domsvc.NarrativeEngine
	metrics   domrepo.Metrics
	l         *applogger.Logger
	now       func() time.Time
}

func NewDashboardUseCase(
	source domrepo.IndicatorSource,
	news domrepo.NewsSource,
	history domrepo.HistoryStore,
	score domsvc.ScoreEngine,
	narrative domsvc.NarrativeEngine,
	m domrepo.Metrics,
	l *applogger.Logger,
) *DashboardUseCase {
	if m == nil {
		m = metrics.Nop{}
	}
	if l == nil {
		l = applogger.Nop()
	}
	return &DashboardUseCase{
		source:    source,
		news:      news,
		history:   history,
		score:     score,
		narrative: narrative,
		metrics:   m,
		l:         l,
		now:       func() time.Time { return time.Now().In(ArgentinaTime) },
	}
}

func (uc *DashboardUseCase) Pulse(ctx context.Context) models.PulseScoreResult {
	snapshot := uc.source.Snapshot(ctx)
	return uc.scoreOf(snapshot, uc.now())
}

func (uc *DashboardUseCase) scoreOf(snapshot models.RawIndicatorSnapshot, asOf time.Time) models.PulseScoreResult {
	res := uc.score.ComputeScore(snapshot, asOf)
	uc.metrics.RecordPulseScore(res.Score)
	if res.Degraded() {
		uc.metrics.RecordFallback(res.Fallback)
		uc.l.Warn("pulse score degraded",
			applogger.String("fallback", res.Fallback),
			applogger.Float64("score", res.Score))
	}
	return res
}

// Snapshot returns the raw indicators with one trend card per series.
func (uc *DashboardUseCase) Snapshot(ctx context.Context) models.SnapshotView {
	type series struct {
		label string
		kind  models.RateKind
	}
	rates := []series{
		{"Dólar Blue", models.RateBlue},
		{"Dólar Oficial", models.RateOficial},
		{"Dólar MEP", models.RateMEP},
	}

	var (
		view    models.SnapshotView
		history = make([][]models.SeriesPoint, len(rates))
		wg      sync.WaitGroup
	)
	wg.Add(1 + len(rates))
	go func() {
		defer wg.Done()
		view.Snapshot = uc.source.Snapshot(ctx)
	}()
	for i, s := range rates {
		go func(i int, kind models.RateKind) {
			defer wg.Done()
			history[i] = uc.source.CurrencyHistory(ctx, kind)
		}(i, s.kind)
	}
	wg.Wait()

	view.Trends = make([]models.IndicatorTrend, 0, len(rates)+1)
	for i, s := range rates {
		if t := trends.Summarize(s.label, history[i]); t != nil {
			view.Trends = append(view.Trends, *t)
		}
	}
	if idx := view.Snapshot.MainIndexOrNil(); idx != nil {
		if t := trends.Summarize("MERVAL", idx.History); t != nil {
			view.Trends = append(view.Trends, *t)
		}
	}
	return view
}

// Today generates the post for the current day. It is never persisted here.
func (uc *DashboardUseCase) Today(ctx context.Context) models.DailyAnalysisPost {
	return uc.generate(ctx, uc.now())
}

func (uc *DashboardUseCase) generate(ctx context.Context, asOf time.Time) models.DailyAnalysisPost {
	post := uc.narrative.GenerateDailyPost(uc.source.Snapshot(ctx), asOf)
	uc.metrics.RecordPostGenerated(string(post.Sentiment))
	return post
}

// History lists today's post followed by the archive, newest first.
// An unreadable archive degrades to today's post alone.
func (uc *DashboardUseCase) History(ctx context.Context, req models.HistoryRequest) []models.DailyAnalysisPost {
	today := uc.Today(ctx)
	archived, err := uc.history.List(ctx)
	if err != nil {
		uc.metrics.RecordError("history_list")
		uc.l.Warn("history unavailable", applogger.Error(err))
		archived = nil
	}
	merged := MergeHistory(&today, archived)
	return FilterHistory(merged, models.Sentiment(req.Sentiment), req.Limit)
}

// GetPost returns today's live post when id is today, else the archived one.
func (uc *DashboardUseCase) GetPost(ctx context.Context, id string) (*models.DailyAnalysisPost, error) {
	now := uc.now()
	if id == util.DateID(now) {
		post := uc.generate(ctx, now)
		return &post, nil
	}
	post, err := uc.history.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domrepo.ErrPostNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

func (uc *DashboardUseCase) News(ctx context.Context) []models.NewsItem {
	return uc.news.Latest(ctx)
}

func (uc *DashboardUseCase) Convert(ctx context.Context, req models.ConvertRequest) []models.Conversion {
	return trends.Convert(req.Amount, models.ConvertDirection(req.Direction), uc.source.ExchangeRates(ctx))
}
