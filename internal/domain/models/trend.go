package models

// IndicatorTrend summarizes a series for a dashboard card.
type IndicatorTrend struct {
	Label         string  `json:"label"`
	Latest        float64 `json:"latest"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Trend         Trend   `json:"trend"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	Points        int     `json:"points"`
}

type ConvertDirection string

const (
	USDToARS ConvertDirection = "usd_to_ars"
	ARSToUSD ConvertDirection = "ars_to_usd"
)

type Conversion struct {
	Kind   RateKind `json:"kind"`
	Name   string   `json:"name"`
	Rate   float64  `json:"rate"`
	Result float64  `json:"result"`
}

type ConvertRequest struct {
	Amount    float64 `query:"amount" json:"amount" default:"1" validate:"gt=0"`
	Direction string  `query:"direction" json:"direction" default:"usd_to_ars" validate:"oneof=usd_to_ars ars_to_usd"`
}

// SnapshotView is the raw snapshot plus per-series summaries.
type SnapshotView struct {
	Snapshot RawIndicatorSnapshot `json:"snapshot"`
	Trends   []IndicatorTrend     `json:"trends"`
}
