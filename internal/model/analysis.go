package model

// PerformanceColor is the coarse health category derived from an analysis
type PerformanceColor string

const (
	ColorGreen  PerformanceColor = "green"
	ColorYellow PerformanceColor = "yellow"
	ColorRed    PerformanceColor = "red"
)

// Severity drives alerting urgency; inverse ordinal of color
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// SignalAnalysis is the analyzer output for one response set
type SignalAnalysis struct {
	Color       PerformanceColor `json:"color"`
	Severity    Severity         `json:"severity"`
	Score       int              `json:"score"` // 1-10
	Summary     string           `json:"summary"`
	KeyThemes   []string         `json:"keyThemes,omitempty"`
	ActionItems []string         `json:"actionItems"` // Never empty
}

// Provenance tags how an analysis was produced
type Provenance string

const (
	// ProvenanceDeterministic means the heuristic analyzer produced the
	// result; same answers always yield the same analysis.
	ProvenanceDeterministic Provenance = "deterministic"

	// ProvenanceInferred means the external model produced the result;
	// never assume idempotency on this path.
	ProvenanceInferred Provenance = "inferred"
)

// AnalyzerResult pairs an analysis with its provenance so callers and tests
// can distinguish the heuristic and inferred paths without re-deriving it
type AnalyzerResult struct {
	Analysis   SignalAnalysis `json:"analysis"`
	Provenance Provenance     `json:"provenance"`
}

// InferredAnalysis is the JSON object the inference service is instructed
// to return
type InferredAnalysis struct {
	SatisfactionScore float64  `json:"satisfaction_score"`
	OverallSentiment  string   `json:"overall_sentiment"`
	KeyThemes         []string `json:"key_themes"`
	Recommendations   []string `json:"recommendations"`
	Summary           string   `json:"summary"`
}
