package models

import "time"

type Sentiment string

const (
	SentimentBullish Sentiment = "bullish"
	SentimentBearish Sentiment = "bearish"
	SentimentNeutral Sentiment = "neutral"
	SentimentMixed   Sentiment = "mixed"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

type Highlight struct {
	LabelEs string `json:"labelEs"`
	LabelEn string `json:"labelEn"`
	Value   string `json:"value"`
	Trend   Trend  `json:"trend"`
	NoteEs  string `json:"noteEs,omitempty"`
	NoteEn  string `json:"noteEn,omitempty"`
}

type Section struct {
	TitleEs   string `json:"titleEs"`
	TitleEn   string `json:"titleEn"`
	ContentEs string `json:"contentEs"`
	ContentEn string `json:"contentEn"`
}

// DailyAnalysisPost is one generated analysis, keyed by ID (YYYY-MM-DD).
type DailyAnalysisPost struct {
	ID            string      `json:"id"`
	Date          time.Time   `json:"date"`
	DateFormatted string      `json:"dateFormatted"`
	TitleEs       string      `json:"titleEs"`
	TitleEn       string      `json:"titleEn"`
	SummaryEs     string      `json:"summaryEs"`
	SummaryEn     string      `json:"summaryEn"`
	Tags          []string    `json:"tags"`
	Sentiment     Sentiment   `json:"sentiment"`
	RiskLevel     RiskLevel   `json:"riskLevel"`
	Highlights    []Highlight `json:"highlights"`
	Sections      []Section   `json:"sections"`
	KeyPointsEs   []string    `json:"keyPointsEs"`
	KeyPointsEn   []string    `json:"keyPointsEn"`
}

// PostEvent is published when a daily post is archived.
type PostEvent struct {
	ID          string            `json:"id"`
	Post        DailyAnalysisPost `json:"post"`
	PublishedAt time.Time         `json:"publishedAt"`
}

// HistoryRequest filters the analysis listing.
type HistoryRequest struct {
	Sentiment string `query:"sentiment" json:"sentiment" validate:"omitempty,oneof=bullish bearish neutral mixed"`
	Limit     int    `query:"limit" json:"limit" default:"30" validate:"gte=1,lte=366"`
}
