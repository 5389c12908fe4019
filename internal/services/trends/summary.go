package trends

import (
	"math"
	"sort"

	"ArgPulse/internal/domain/models"
)

// FlatThreshold is the absolute change percent under which a series is neutral.
const FlatThreshold = 0.05

// Summarize reduces a series to a dashboard card. Points are ordered by date
// before comparing first and last. Returns nil for an empty series.
func Summarize(label string, series []models.SeriesPoint) *models.IndicatorTrend {
	if len(series) == 0 {
		return nil
	}
	points := append([]models.SeriesPoint(nil), series...)
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	first, last := points[0].Value, points[len(points)-1].Value
	t := &models.IndicatorTrend{
		Label:  label,
		Latest: last,
		Change: last - first,
		Trend:  models.TrendNeutral,
		Min:    math.Inf(1),
		Max:    math.Inf(-1),
		Points: len(points),
	}
	for _, p := range points {
		t.Min = math.Min(t.Min, p.Value)
		t.Max = math.Max(t.Max, p.Value)
	}
	if first != 0 {
		t.ChangePercent = math.Round(t.Change/first*10000) / 100
	}
	switch {
	case math.Abs(t.ChangePercent) < FlatThreshold:
	case t.ChangePercent > 0:
		t.Trend = models.TrendUp
	default:
		t.Trend = models.TrendDown
	}
	return t
}
