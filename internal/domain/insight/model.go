package insight

import "encoding/json"

// Config wires runtime dependencies for the insight domain.
type Config struct {
	Model           string
	Temperature     float32
	MaxTokens       int
	DefaultStrategy string
}

// AuditRequest is the payload accepted by the audit endpoint.
type AuditRequest struct {
	URL      string `json:"url"`
	Strategy string `json:"strategy,omitempty"`
}

// AnalyzeRequest carries a previously fetched PageSpeed payload.
type AnalyzeRequest struct {
	PagespeedData json.RawMessage `json:"pagespeedData"`
}

// AnalyzeResponse is serialized back to API consumers.
type AnalyzeResponse struct {
	Analysis string `json:"analysis"`
}

// Summary is the compact reduction of an audit payload that survives into
// the model prompt. Missing source fields degrade to omission.
type Summary struct {
	PerformanceScore string        `json:"performanceScore,omitempty"`
	Metrics          []Metric      `json:"metrics,omitempty"`
	Opportunities    []Opportunity `json:"opportunities,omitempty"`
	Diagnostics      *Diagnostics  `json:"diagnostics,omitempty"`
}

// Metric is a (title, displayValue) pair for one of the core vitals audits.
type Metric struct {
	Title        string `json:"title"`
	DisplayValue string `json:"displayValue"`
}

// Opportunity describes a potential improvement with an estimated saving.
type Opportunity struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	PotentialSavings string `json:"potentialSavings"`
}

// Diagnostics carries the prose renderings of the diagnostic audits.
type Diagnostics struct {
	CriticalRequestChains string `json:"criticalRequestChains,omitempty"`
	ResourceSummary       string `json:"resourceSummary,omitempty"`
}
