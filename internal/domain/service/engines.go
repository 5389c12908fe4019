package service

import (
	"time"

	"ArgPulse/internal/domain/models"
)

// ScoreEngine maps a snapshot to the composite health score. It never fails.
type ScoreEngine interface {
	ComputeScore(snapshot models.RawIndicatorSnapshot, asOf time.Time) models.PulseScoreResult
}

// NarrativeEngine maps a snapshot to the bilingual daily post. It never fails.
type NarrativeEngine interface {
	GenerateDailyPost(snapshot models.RawIndicatorSnapshot, asOf time.Time) models.DailyAnalysisPost
}
