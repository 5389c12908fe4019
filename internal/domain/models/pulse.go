package models

// PulseScoreResult is the composite health score. It is recomputed on every request.
type PulseScoreResult struct {
	Score         float64 `json:"score"`
	PreviousScore float64 `json:"previousScore"`
	LastUpdated   string  `json:"lastUpdated"`
	Explanation   string  `json:"explanation"`
	// Fallback names the degraded path taken, empty for a live computation.
	Fallback string `json:"fallback,omitempty"`
}

const (
	FallbackMissingLeg    = "missing_leg"
	FallbackInternalFault = "internal_fault"
)

// Degraded reports whether the result came from a fallback path.
func (r PulseScoreResult) Degraded() bool {
	return r.Fallback != ""
}
