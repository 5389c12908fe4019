package pulse

// Benchmark domains. Each factor maps [Min, Max] onto [0, 100].
const (
	SpreadMin = 0.0
	SpreadMax = 100.0 // percent gap, inverted

	CountryRiskMin = 200.0
	CountryRiskMax = 3000.0 // basis points, inverted

	InflationMin = 0.0
	InflationMax = 15.0 // monthly percent, inverted

	ReservesMin = 10.0
	ReservesMax = 80.0 // billions of USD
)

// Structural sentiment steps, selected by country risk bucket.
const (
	SentimentBase      = 35.0
	SentimentBelow600  = 50.0
	SentimentBelow1000 = 40.0
	SentimentBelow1500 = 25.0
	SentimentAbove1500 = 15.0
	sentimentCut600    = 600.0
	sentimentCut1000   = 1000.0
	sentimentCut1500   = 1500.0
)

// Factor weights. They sum to 1.
const (
	WeightSpread      = 0.25
	WeightCountryRisk = 0.20
	WeightInflation   = 0.25
	WeightReserves    = 0.15
	WeightSentiment   = 0.15
)

// Dampening compresses the raw score into [Floor, Ceiling].
const (
	Floor       = 15.0
	Compression = 0.47
	Ceiling     = 85.0
)

// DefaultOfficialRate stands in when the rates leg exists but has no usable official quote.
const DefaultOfficialRate = 1000.0

// PreviousScoreDelta is subtracted from the score to produce PreviousScore.
// No prior score is stored, so this is a display reference only.
const PreviousScoreDelta = 0.3

// Fallback results.
const (
	MissingLegScore          = 45.0
	MissingLegPrevious       = 44.5
	MissingLegExplanation    = "Real-time compute failed. Using last cached snapshot."
	InternalFaultScore       = 49.0
	InternalFaultPrevious    = 48.7
	InternalFaultExplanation = "Calculating..."
	NotAvailable             = "N/A"
)
