package narrative

import (
	"strings"
	"time"

	"ArgPulse/internal/domain/models"
	"ArgPulse/pkg/util"
)

// language renders every prose field of a post from the shared facts.
// Each language is templated on its own; nothing is translated.
type language interface {
	sectionTitles() [3]string
	title(s models.Sentiment, asOf time.Time) string
	summary(f *facts, s models.Sentiment) string
	macro(f *facts, s models.Sentiment) string
	sectors(f *facts) string
	outlook(f *facts) string
	keyPoints(f *facts) []string
}

var (
	es language = spanish{}
	en language = english{}
)

// Engine builds the daily analysis post. It holds no state.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

func (Engine) GenerateDailyPost(snapshot models.RawIndicatorSnapshot, asOf time.Time) models.DailyAnalysisPost {
	return GenerateDailyPost(snapshot, asOf)
}

// GenerateDailyPost is deterministic for a given snapshot and asOf. Missing
// facts drop their sentences, highlights and key points; nothing is invented.
func GenerateDailyPost(snapshot models.RawIndicatorSnapshot, asOf time.Time) models.DailyAnalysisPost {
	f := extractFacts(snapshot)
	bullish, bearish := f.votes()
	sentiment := classify(bullish, bearish)

	titlesEs, titlesEn := es.sectionTitles(), en.sectionTitles()
	sections := []models.Section{
		{TitleEs: titlesEs[0], TitleEn: titlesEn[0], ContentEs: es.macro(&f, sentiment), ContentEn: en.macro(&f, sentiment)},
		{TitleEs: titlesEs[1], TitleEn: titlesEn[1], ContentEs: es.sectors(&f), ContentEn: en.sectors(&f)},
		{TitleEs: titlesEs[2], TitleEn: titlesEn[2], ContentEs: es.outlook(&f), ContentEn: en.outlook(&f)},
	}

	return models.DailyAnalysisPost{
		ID:            util.DateID(asOf),
		Date:          asOf,
		DateFormatted: util.LongDateEs(asOf),
		TitleEs:       es.title(sentiment, asOf),
		TitleEn:       en.title(sentiment, asOf),
		SummaryEs:     es.summary(&f, sentiment),
		SummaryEn:     en.summary(&f, sentiment),
		Tags:          buildTags(&f),
		Sentiment:     sentiment,
		RiskLevel:     riskLevel(bearish),
		Highlights:    buildHighlights(&f),
		Sections:      sections,
		KeyPointsEs:   nonNil(es.keyPoints(&f)),
		KeyPointsEn:   nonNil(en.keyPoints(&f)),
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
