package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ArgPulse/internal/domain/models"
	domrepo "ArgPulse/internal/domain/repository"
	"ArgPulse/internal/repository"
	"ArgPulse/internal/services/narrative"
	"ArgPulse/internal/services/pulse"
	"ArgPulse/internal/usecase"
	"ArgPulse/pkg/cache"
	xlogger "ArgPulse/pkg/logger"
	"ArgPulse/pkg/util"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct{ s models.RawIndicatorSnapshot }

func (f stubSource) ExchangeRates(context.Context) map[models.RateKind]models.ExchangeRate {
	return f.s.ExchangeRates
}
func (f stubSource) CurrencyHistory(context.Context, models.RateKind) []models.SeriesPoint {
	return nil
}
func (f stubSource) CountryRisk(context.Context) *models.CountryRisk { return f.s.CountryRisk }
func (f stubSource) InflationSeries(context.Context) []models.InflationPoint {
	return f.s.InflationSeries
}
func (f stubSource) Reserves(context.Context) *models.Reserves           { return f.s.Reserves }
func (f stubSource) MarketIndices(context.Context) *models.MarketIndices { return f.s.Markets }
func (f stubSource) Snapshot(context.Context) models.RawIndicatorSnapshot {
	return f.s
}

type stubNews struct{}

func (stubNews) Latest(context.Context) []models.NewsItem {
	return []models.NewsItem{{Source: "Ámbito Financiero", Title: "El BCRA compró reservas", Time: "Just now"}}
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func snapshot() models.RawIndicatorSnapshot {
	return models.RawIndicatorSnapshot{
		ExchangeRates: map[models.RateKind]models.ExchangeRate{
			models.RateOficial: {Sell: 1000},
			models.RateBlue:    {Sell: 1300},
		},
		CountryRisk:     &models.CountryRisk{Value: 519},
		InflationSeries: []models.InflationPoint{{Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Value: 2.9}},
		Reserves:        &models.Reserves{Value: 29500},
	}
}

func newEcho(t *testing.T, history domrepo.HistoryStore) (*echo.Echo, *usecase.DashboardUseCase) {
	t.Helper()
	if history == nil {
		history = repository.NewFileHistory(t.TempDir()+"/history.json", nil)
	}
	dash := usecase.NewDashboardUseCase(stubSource{s: snapshot()}, stubNews{}, history, pulse.NewEngine(), narrative.NewEngine(), nil, nil)
	poll := usecase.NewPollUseCase(repository.NewCachePollStore(cache.NewMemoryCache(), time.Hour))

	e := echo.New()
	NewDashboardHandler(xlogger.Nop(), dash).RegisterRoutes(e)
	NewPollHandler(xlogger.Nop(), poll).RegisterRoutes(e)
	NewPulseStreamHandler(xlogger.Nop(), dash, 50*time.Millisecond).RegisterRoutes(e)
	return e, dash
}

func do(t *testing.T, e *echo.Echo, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestPulse(t *testing.T) {
	e, _ := newEcho(t, nil)
	rec, env := do(t, e, http.MethodGet, "/api/pulse", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res models.PulseScoreResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.InDelta(t, 46.52, res.Score, 0.01)
	assert.Empty(t, res.Fallback)
}

func TestAnalysisToday(t *testing.T) {
	e, _ := newEcho(t, nil)
	rec, env := do(t, e, http.MethodGet, "/api/analysis/today", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var post models.DailyAnalysisPost
	require.NoError(t, json.Unmarshal(env.Data, &post))
	assert.Equal(t, util.DateID(time.Now().In(usecase.ArgentinaTime)), post.ID)
	assert.Len(t, post.Sections, 3)
}

func TestAnalysisHistory(t *testing.T) {
	store := repository.NewFileHistory(t.TempDir()+"/history.json", nil)
	require.NoError(t, store.Append(context.Background(), models.DailyAnalysisPost{
		ID: "2026-02-10", Date: time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC), Sentiment: models.SentimentBearish,
	}))
	e, _ := newEcho(t, store)

	rec, env := do(t, e, http.MethodGet, "/api/analysis", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Rows  []models.DailyAnalysisPost `json:"rows"`
		Total int64                      `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Rows, 2)
	assert.Equal(t, "2026-02-10", list.Rows[1].ID)

	_, env = do(t, e, http.MethodGet, "/api/analysis?sentiment=bearish", "")
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Rows, 1)

	rec, _ = do(t, e, http.MethodGet, "/api/analysis?sentiment=euphoric", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, e, http.MethodGet, "/api/analysis?limit=1000", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalysisByID(t *testing.T) {
	e, _ := newEcho(t, nil)

	rec, env := do(t, e, http.MethodGet, "/api/analysis/1999-01-01", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, env.Status)

	today := util.DateID(time.Now().In(usecase.ArgentinaTime))
	rec, _ = do(t, e, http.MethodGet, "/api/analysis/"+today, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestConvertAndNews(t *testing.T) {
	e, _ := newEcho(t, nil)

	rec, env := do(t, e, http.MethodGet, "/api/convert?amount=10&direction=usd_to_ars", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var conv []models.Conversion
	require.NoError(t, json.Unmarshal(env.Data, &conv))
	require.Len(t, conv, 2)
	assert.Equal(t, 10000.0, conv[0].Result)

	rec, _ = do(t, e, http.MethodGet, "/api/convert?amount=-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(t, e, http.MethodGet, "/api/news", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []models.NewsItem
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 1)
}

func TestPoll(t *testing.T) {
	e, _ := newEcho(t, nil)

	rec, env := do(t, e, http.MethodGet, "/api/poll", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var res models.PollResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, int64(100), res.Total)

	rec, env = do(t, e, http.MethodPost, "/api/poll", `{"optionId":"up_strong"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, int64(16), res.Counts[models.PollUpStrong])

	rec, _ = do(t, e, http.MethodPost, "/api/poll", `{"optionId":"down"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = do(t, e, http.MethodPost, "/api/poll", `{"optionId":"moon"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPulseStream(t *testing.T) {
	e, _ := newEcho(t, nil)
	srv := httptest.NewServer(e)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/pulse", nil)
	require.NoError(t, err)
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for i := 0; i < 2; i++ {
		var res models.PulseScoreResult
		require.NoError(t, conn.ReadJSON(&res))
		assert.InDelta(t, 46.52, res.Score, 0.01)
	}
}
