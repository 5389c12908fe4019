package usecase

import (
	"sort"

	"ArgPulse/internal/domain/models"
)

// MergeHistory puts today first, drops archived copies of the same day and
// orders everything newest first. The sort is stable so equal dates keep
// their input order.
func MergeHistory(today *models.DailyAnalysisPost, history []models.DailyAnalysisPost) []models.DailyAnalysisPost {
	out := make([]models.DailyAnalysisPost, 0, len(history)+1)
	if today != nil {
		out = append(out, *today)
	}
	for _, p := range history {
		if today != nil && p.ID == today.ID {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// FilterHistory keeps posts of one sentiment (all when empty) up to limit.
func FilterHistory(posts []models.DailyAnalysisPost, sentiment models.Sentiment, limit int) []models.DailyAnalysisPost {
	out := make([]models.DailyAnalysisPost, 0, len(posts))
	for _, p := range posts {
		if sentiment != "" && p.Sentiment != sentiment {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
