package narrative

import (
	"strings"
	"testing"
	"time"

	"ArgPulse/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var asOf = time.Date(2026, 2, 14, 10, 30, 0, 0, time.UTC)

type snap struct {
	oficial, blue, mep float64
	risk               float64
	inflation          float64
	reserves           float64
	trend              models.Trend
}

func (s snap) build() models.RawIndicatorSnapshot {
	out := models.RawIndicatorSnapshot{ExchangeRates: map[models.RateKind]models.ExchangeRate{}}
	if s.oficial > 0 {
		out.ExchangeRates[models.RateOficial] = models.ExchangeRate{Sell: s.oficial}
	}
	if s.blue > 0 {
		out.ExchangeRates[models.RateBlue] = models.ExchangeRate{Sell: s.blue}
	}
	if s.mep > 0 {
		out.ExchangeRates[models.RateMEP] = models.ExchangeRate{Sell: s.mep}
	}
	if s.risk > 0 {
		out.CountryRisk = &models.CountryRisk{Value: s.risk}
	}
	if s.inflation > 0 {
		out.InflationSeries = []models.InflationPoint{{Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Value: s.inflation}}
	}
	if s.reserves > 0 {
		out.Reserves = &models.Reserves{Value: s.reserves}
	}
	if s.trend != "" {
		change := "0.0%"
		switch s.trend {
		case models.TrendUp:
			change = "+1.2%"
		case models.TrendDown:
			change = "-0.8%"
		}
		out.Markets = &models.MarketIndices{MainIndex: &models.MainIndex{Value: 2100000, Change: change, Trend: s.trend}}
	}
	return out
}

func TestGenerateDailyPost_Sentiment(t *testing.T) {
	tests := []struct {
		name      string
		in        snap
		sentiment models.Sentiment
		risk      models.RiskLevel
	}{
		{
			name:      "all bullish",
			in:        snap{oficial: 1000, blue: 1150, risk: 500, inflation: 2.5, trend: models.TrendUp},
			sentiment: models.SentimentBullish,
			risk:      models.RiskLow,
		},
		{
			name:      "all bearish",
			in:        snap{oficial: 1000, blue: 1600, risk: 1200, inflation: 9, trend: models.TrendDown},
			sentiment: models.SentimentBearish,
			risk:      models.RiskHigh,
		},
		{
			name:      "two against two is neutral",
			in:        snap{oficial: 1000, blue: 1600, risk: 500, inflation: 2.5, trend: models.TrendDown},
			sentiment: models.SentimentNeutral,
			risk:      models.RiskMedium,
		},
		{
			name:      "one vote lead is mixed",
			in:        snap{oficial: 1000, blue: 1300, risk: 500, inflation: 4, trend: models.TrendNeutral},
			sentiment: models.SentimentMixed,
			risk:      models.RiskLow,
		},
		{
			name:      "empty snapshot is neutral",
			in:        snap{},
			sentiment: models.SentimentNeutral,
			risk:      models.RiskLow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := GenerateDailyPost(tt.in.build(), asOf)
			assert.Equal(t, tt.sentiment, post.Sentiment)
			assert.Equal(t, tt.risk, post.RiskLevel)
		})
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, models.SentimentBullish, classify(3, 1))
	assert.Equal(t, models.SentimentMixed, classify(2, 1))
	assert.Equal(t, models.SentimentMixed, classify(1, 2))
	assert.Equal(t, models.SentimentBearish, classify(0, 2))
	assert.Equal(t, models.SentimentNeutral, classify(0, 0))
}

func TestGenerateDailyPost_Identity(t *testing.T) {
	post := GenerateDailyPost(snap{oficial: 1000, blue: 1300}.build(), asOf)

	assert.Equal(t, "2026-02-14", post.ID)
	assert.Equal(t, asOf, post.Date)
	assert.Equal(t, "Sábado, 14 de febrero de 2026", post.DateFormatted)
	assert.Equal(t, "Análisis del Sábado, 14 de febrero de 2026: Panorama Económico Mixto", post.TitleEs)
	assert.Equal(t, "Analysis — Saturday, February 14, 2026: Mixed Economic Outlook", post.TitleEn)
	require.Len(t, post.Sections, 3)
	assert.Equal(t, "🏛️ Contexto Macroeconómico", post.Sections[0].TitleEs)
	assert.Equal(t, "🔭 Outlook & Key Factors to Watch", post.Sections[2].TitleEn)
}

func TestGenerateDailyPost_SpreadLabel(t *testing.T) {
	post := GenerateDailyPost(snap{oficial: 1000, blue: 1300}.build(), asOf)

	assert.Contains(t, post.SummaryEs, "El dólar blue opera en $1.300, con una brecha cambiaria del 30.0% respecto al oficial.")
	assert.Contains(t, post.SummaryEn, "The blue dollar trades at $1,300, with a 30.0% spread over the official rate.")
	assert.Contains(t, post.Sections[0].ContentEs, "se sitúa en el 30.0%")
	assert.Contains(t, post.Sections[0].ContentEs, "Un nivel de brecha moderado")
	assert.Contains(t, post.KeyPointsEs, "Dólar blue en $1.300 con brecha del 30.0% frente al oficial")
	assert.Contains(t, post.KeyPointsEn, "Blue dollar at $1,300 with a 30.0% spread over the official rate")

	require.NotEmpty(t, post.Highlights)
	assert.Equal(t, "Brecha: 30.0%", post.Highlights[0].NoteEs)
}

func TestGenerateDailyPost_BlueWithoutOfficial(t *testing.T) {
	post := GenerateDailyPost(snap{blue: 1300}.build(), asOf)

	assert.Contains(t, post.SummaryEs, "El dólar blue opera en $1.300.")
	assert.Contains(t, post.KeyPointsEs, "Dólar blue en $1.300")
	assert.NotContains(t, post.Sections[0].ContentEs, "brecha cambiaria")
}

func TestGenerateDailyPost_RiskBoundaries(t *testing.T) {
	tests := []struct {
		risk   float64
		trend  models.Trend
		wantEs string
		wantEn string
	}{
		{699, "", "Riesgo país en 699 bps — nivel favorable para acceso al crédito", "Country risk at 699 bps — favorable level for credit access"},
		{700, models.TrendDown, "Riesgo país en 700 bps — nivel moderado, mejora gradual", "Country risk at 700 bps — moderate level, gradual improvement"},
		{1000, "", "Riesgo país en 1.000 bps — nivel moderado, mejora gradual", "Country risk at 1,000 bps — moderate level, gradual improvement"},
		{1001, "", "Riesgo país en 1.001 bps — nivel crítico, crédito internacional vedado", "Country risk at 1,001 bps — critical level, no international credit access"},
	}
	for _, tt := range tests {
		post := GenerateDailyPost(snap{risk: tt.risk, trend: tt.trend}.build(), asOf)
		assert.Contains(t, post.KeyPointsEs, tt.wantEs)
		assert.Contains(t, post.KeyPointsEn, tt.wantEn)
	}
}

func TestGenerateDailyPost_MissingFactsAreOmitted(t *testing.T) {
	post := GenerateDailyPost(snap{oficial: 1000, blue: 1300, risk: 650}.build(), asOf)

	for _, h := range post.Highlights {
		assert.NotEqual(t, "Reservas BCRA", h.LabelEs)
		assert.NotEqual(t, "MERVAL", h.LabelEs)
		assert.NotEqual(t, "Inflación Mensual", h.LabelEs)
	}
	for _, kp := range post.KeyPointsEs {
		assert.False(t, strings.HasPrefix(kp, "Reservas"), kp)
		assert.False(t, strings.HasPrefix(kp, "Inflación"), kp)
		assert.False(t, strings.HasPrefix(kp, "MERVAL"), kp)
	}
	assert.NotContains(t, post.Sections[1].ContentEs, "**Sector externo:**")
	assert.NotContains(t, post.Sections[1].ContentEs, "**Precios:**")
	assert.NotContains(t, post.Sections[2].ContentEs, "La inflación es el indicador")
	assert.Contains(t, post.Sections[2].ContentEs, "La evolución del riesgo país seguirá siendo determinante")
}

func TestGenerateDailyPost_FullSnapshot(t *testing.T) {
	post := GenerateDailyPost(snap{
		oficial: 1000, blue: 1150, mep: 1100,
		risk: 550, inflation: 2.4, reserves: 38000, trend: models.TrendUp,
	}.build(), asOf)

	labels := make([]string, 0, len(post.Highlights))
	for _, h := range post.Highlights {
		labels = append(labels, h.LabelEn)
	}
	assert.Equal(t, []string{"Blue Dollar", "Official Rate", "Country Risk", "MERVAL", "BCRA Reserves", "Monthly CPI"}, labels)

	sectors := post.Sections[1].ContentEs
	assert.Contains(t, sectors, "**Deuda soberana:** El riesgo país en 550 puntos básicos refleja un acceso potencial")
	assert.Contains(t, sectors, "El MERVAL avanza +1.2% en la jornada")
	assert.Contains(t, sectors, "La inflación mensual más reciente de 2.4% marca un hito")
	assert.Contains(t, sectors, "Las reservas brutas del BCRA en USD 38.0 mil millones ofrecen un margen")
	assert.Len(t, strings.Split(sectors, "\n\n"), 4)

	assert.Contains(t, post.Sections[0].ContentEn, "with a MEP-official spread of 10.0%")
	assert.Contains(t, post.KeyPointsEn, "MERVAL gains +1.2% on the day")
	assert.Contains(t, post.KeyPointsEn, "BCRA gross reserves at USD 38.0B")
	assert.Contains(t, post.Tags, "MERVAL ↑")
	assert.Contains(t, post.Tags, "Desinflación")
	assert.Contains(t, post.SummaryEn, "**optimistic**")
}

func TestGenerateDailyPost_Deterministic(t *testing.T) {
	in := snap{oficial: 1000, blue: 1300, risk: 519, inflation: 2.9, reserves: 29500, trend: models.TrendDown}.build()
	assert.Equal(t, GenerateDailyPost(in, asOf), NewEngine().GenerateDailyPost(in, asOf))
}

func TestJoinNonEmpty(t *testing.T) {
	assert.Equal(t, "a b", joinNonEmpty(" ", "", "a", "", "b"))
	assert.Equal(t, "", joinNonEmpty(" "))
}

func highlight(t *testing.T, post models.DailyAnalysisPost, labelEn string) models.Highlight {
	t.Helper()
	for _, h := range post.Highlights {
		if h.LabelEn == labelEn {
			return h
		}
	}
	require.Failf(t, "highlight not found", "%s", labelEn)
	return models.Highlight{}
}

func TestBuildHighlights_Thresholds(t *testing.T) {
	tests := []struct {
		name   string
		in     snap
		label  string
		trend  models.Trend
		noteEs string
		noteEn string
	}{
		{"risk 699", snap{risk: 699}, "Country Risk", models.TrendUp, "Nivel favorable", "Favorable level"},
		{"risk 700", snap{risk: 700}, "Country Risk", models.TrendDown, "Nivel moderado", "Moderate level"},
		{"risk 1000", snap{risk: 1000}, "Country Risk", models.TrendDown, "Nivel moderado", "Moderate level"},
		{"risk 1001", snap{risk: 1001}, "Country Risk", models.TrendDown, "Nivel crítico", "Critical level"},
		{"reserves 30001", snap{reserves: 30001}, "BCRA Reserves", models.TrendUp, "Controlado", "Controlled"},
		{"reserves 30000", snap{reserves: 30000}, "BCRA Reserves", models.TrendDown, "Controlado", "Controlled"},
		{"reserves 25000", snap{reserves: 25000}, "BCRA Reserves", models.TrendDown, "Controlado", "Controlled"},
		{"reserves 24999", snap{reserves: 24999}, "BCRA Reserves", models.TrendDown, "Nivel bajo", "Low level"},
		{"inflation 3.9", snap{inflation: 3.9}, "Monthly CPI", models.TrendUp, "Desaceleración", "Decelerating"},
		{"inflation 4", snap{inflation: 4}, "Monthly CPI", models.TrendDown, "Moderada", "Moderate"},
		{"inflation 8", snap{inflation: 8}, "Monthly CPI", models.TrendDown, "Moderada", "Moderate"},
		{"inflation 8.1", snap{inflation: 8.1}, "Monthly CPI", models.TrendDown, "Alta presión", "High pressure"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := highlight(t, GenerateDailyPost(tt.in.build(), asOf), tt.label)
			assert.Equal(t, tt.trend, h.Trend)
			assert.Equal(t, tt.noteEs, h.NoteEs)
			assert.Equal(t, tt.noteEn, h.NoteEn)
		})
	}
}

func TestGenerateDailyPost_DroppingReservesOnlyRemovesReserves(t *testing.T) {
	full := snap{
		oficial: 1000, blue: 1150, mep: 1100,
		risk: 550, inflation: 2.4, reserves: 38000, trend: models.TrendUp,
	}
	partial := full
	partial.reserves = 0

	a := GenerateDailyPost(full.build(), asOf)
	b := GenerateDailyPost(partial.build(), asOf)

	assert.Len(t, a.Highlights, 6)
	assert.Len(t, b.Highlights, 5)
	assert.Len(t, a.KeyPointsEs, 5)
	assert.Len(t, b.KeyPointsEs, 4)
	assert.Len(t, b.KeyPointsEn, 4)
	assert.Len(t, b.Sections, len(a.Sections))
	assert.Equal(t, a.Tags, b.Tags)
	for _, h := range b.Highlights {
		assert.NotEqual(t, "BCRA Reserves", h.LabelEn)
	}
}
