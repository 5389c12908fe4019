package pulse

import (
	"fmt"
	"math"
	"time"

	"ArgPulse/internal/domain/models"
)

// Engine computes the composite health score. It holds no state.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

func (Engine) ComputeScore(snapshot models.RawIndicatorSnapshot, asOf time.Time) models.PulseScoreResult {
	return ComputeScore(snapshot, asOf)
}

// Factors are the normalized inputs of one computation, exposed for inspection.
type Factors struct {
	Gap             float64
	LatestInflation float64
	Spread          float64
	CountryRisk     float64
	Inflation       float64
	Reserves        float64
	Sentiment       float64
}

// Raw returns the weighted sum before dampening.
func (f Factors) Raw() float64 {
	return f.Spread*WeightSpread +
		f.CountryRisk*WeightCountryRisk +
		f.Inflation*WeightInflation +
		f.Reserves*WeightReserves +
		f.Sentiment*WeightSentiment
}

// ComputeScore never panics. A missing leg (rates, country risk, inflation, reserves)
// yields the cached-snapshot fallback; any internal fault yields the "Calculating..." one.
func ComputeScore(snapshot models.RawIndicatorSnapshot, asOf time.Time) (result models.PulseScoreResult) {
	defer func() {
		if r := recover(); r != nil {
			result = internalFault()
		}
	}()

	if missingLeg(snapshot) {
		return models.PulseScoreResult{
			Score:         MissingLegScore,
			PreviousScore: MissingLegPrevious,
			LastUpdated:   NotAvailable,
			Explanation:   MissingLegExplanation,
			Fallback:      models.FallbackMissingLeg,
		}
	}

	f := ComputeFactors(snapshot)
	score := Dampen(f.Raw())
	if !finite(score) || !finite(f.Gap) || !finite(f.LatestInflation) {
		return internalFault()
	}

	return models.PulseScoreResult{
		Score:         score,
		PreviousScore: score - PreviousScoreDelta,
		LastUpdated:   asOf.Format("15:04:05"),
		Explanation: fmt.Sprintf(
			"Score weighted by %.1f%% gap and %.1f%% inflation. Fiscal anchor provides 45%% of total structural stability.",
			f.Gap, f.LatestInflation,
		),
	}
}

// ComputeFactors normalizes every leg. The snapshot must have all four legs.
func ComputeFactors(s models.RawIndicatorSnapshot) Factors {
	oficial, ok := s.SellRate(models.RateOficial)
	if !ok {
		oficial = DefaultOfficialRate
	}
	blue, ok := s.SellRate(models.RateBlue)
	if !ok {
		blue = oficial
	}
	gap := (blue - oficial) / oficial * 100

	inflation, _ := s.LatestInflation()
	risk := s.CountryRisk.Value

	return Factors{
		Gap:             gap,
		LatestInflation: inflation,
		Spread:          Normalize(gap, SpreadMin, SpreadMax, true),
		CountryRisk:     Normalize(risk, CountryRiskMin, CountryRiskMax, true),
		Inflation:       Normalize(inflation, InflationMin, InflationMax, true),
		Reserves:        Normalize(s.Reserves.Value/1000, ReservesMin, ReservesMax, false),
		Sentiment:       StructuralSentiment(s.CountryRisk),
	}
}

// Normalize maps v from [min, max] onto [0, 100], clamped, optionally inverted.
func Normalize(v, min, max float64, inverted bool) float64 {
	score := (v - min) / (max - min) * 100
	clamped := math.Max(0, math.Min(100, score))
	if inverted {
		return 100 - clamped
	}
	return clamped
}

// StructuralSentiment is a step function of the country risk bucket.
func StructuralSentiment(risk *models.CountryRisk) float64 {
	if risk == nil {
		return SentimentBase
	}
	switch {
	case risk.Value < sentimentCut600:
		return SentimentBelow600
	case risk.Value < sentimentCut1000:
		return SentimentBelow1000
	case risk.Value < sentimentCut1500:
		return SentimentBelow1500
	default:
		return SentimentAbove1500
	}
}

// Dampen applies floor + raw*compression, capped at Ceiling.
func Dampen(raw float64) float64 {
	return math.Min(Ceiling, Floor+raw*Compression)
}

func missingLeg(s models.RawIndicatorSnapshot) bool {
	return len(s.ExchangeRates) == 0 ||
		s.CountryRisk == nil ||
		len(s.InflationSeries) == 0 ||
		s.Reserves == nil
}

func internalFault() models.PulseScoreResult {
	return models.PulseScoreResult{
		Score:         InternalFaultScore,
		PreviousScore: InternalFaultPrevious,
		LastUpdated:   NotAvailable,
		Explanation:   InternalFaultExplanation,
		Fallback:      models.FallbackInternalFault,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
