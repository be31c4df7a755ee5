package models

// AnalyzeRequest is the body of POST /v1/analyze.
type AnalyzeRequest struct {
	Query string `json:"query" binding:"required"`
	City  string `json:"city"`
}

// AnalyzeInput echoes the normalized request back to the caller.
type AnalyzeInput struct {
	Query string `json:"query"`
	City  string `json:"city"`
}

// AnalyzeResponse is the full report returned by the analysis service.
// The page layer treats it as opaque display data.
type AnalyzeResponse struct {
	RequestID   string       `json:"request_id"`
	Input       AnalyzeInput `json:"input"`
	Score       Score        `json:"score"`
	Summary     string       `json:"summary"`
	Positives   []string     `json:"positives"`
	Cautions    []string     `json:"cautions"`
	Risks       []string     `json:"risks"`
	Radar       []RadarItem  `json:"radar"`
	GeneratedAt string       `json:"generated_at"`
}

// Radar impact categories.
const (
	ImpactPositive = "positive"
	ImpactMonitor  = "monitor"
	ImpactRisk     = "risk"
)

// RadarItem is a nearby news signal tagged with an impact category.
type RadarItem struct {
	Impact       string `json:"impact"`
	Title        string `json:"title"`
	Date         string `json:"date,omitempty"`
	WhyItMatters string `json:"why_it_matters"`
	Source       string `json:"source,omitempty"`
}

type HealthResponse struct {
	OK   bool   `json:"ok"`
	Time string `json:"time"`
}
