// Package news holds the data model shared by the ingestion and
// enrichment stages.
package news

// CandidateItem is a single ingested article before enrichment.
// ID is generated by the source adapter that produced the item and is
// unique within a run. Published is kept as the source's raw string and
// never parsed.
type CandidateItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Source    string `json:"source,omitempty"`
	Published string `json:"published,omitempty"`
	Content   string `json:"content,omitempty"`
}

// DedupKey joins URL and title with no separator, so url="A" title="B"
// collides with url="" title="AB". Kept that way on purpose: changing
// the key would change which of two near-duplicates survives.
func (c CandidateItem) DedupKey() string {
	return c.URL + c.Title
}

// Recommendation vocabulary produced by the summarize stage.
const (
	RecommendConsult  = "Consult professional"
	RecommendInfoOnly = "Information only"
)

// Summary is the summarize-stage payload. Either the structured fields
// are set, or Raw carries the model output verbatim when it could not
// be parsed (a degraded payload, not a failure).
type Summary struct {
	Summary        string   `json:"summary,omitempty"`
	KeyFacts       []string `json:"key_facts,omitempty"`
	Uncertainty    string   `json:"uncertainty,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
	Raw            string   `json:"raw,omitempty"`
}

// Degraded reports whether the payload fell back to raw model output.
func (s *Summary) Degraded() bool {
	return s.Raw != ""
}

// Classification labels.
const (
	LabelActionable  = "Actionable Advice"
	LabelInformative = "Informative"
)

// Classification is the classify-stage payload. Confidence is 0.0-1.0.
type Classification struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// EnrichmentResult is the per-item outcome of the two-stage pipeline.
// Exactly one of Summary or ErrorSummarize is set; Classification and
// ErrorClassify only appear when summarization succeeded.
type EnrichmentResult struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	URL            string          `json:"url"`
	Source         string          `json:"source,omitempty"`
	Summary        *Summary        `json:"summary,omitempty"`
	Classification *Classification `json:"classification,omitempty"`
	ErrorSummarize string          `json:"error_summarize,omitempty"`
	ErrorClassify  string          `json:"error_classify,omitempty"`
}

// Batch is the ordered result set of one run: one EnrichmentResult per
// aggregated item, in dispatch order.
type Batch []EnrichmentResult
