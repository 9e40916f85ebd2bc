package enrich

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/nandinisonar18/Health-Multi-Agent/internal/logger"
	"github.com/nandinisonar18/Health-Multi-Agent/internal/news"
)

// maxPromptRunes bounds the article text placed into a prompt.
const maxPromptRunes = 6000

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSON finds the outermost JSON object substring in a model
// response, tolerating prose or code fences around it.
func extractJSON(raw string) (string, bool) {
	m := jsonObjectPattern.FindString(raw)
	return m, m != ""
}

// parseSummary converts raw model output into the summary payload
// union: structured fields when the JSON parses, otherwise a degraded
// payload with the verbatim response.
func parseSummary(raw string) *news.Summary {
	if body, ok := extractJSON(raw); ok {
		var s news.Summary
		if err := json.Unmarshal([]byte(body), &s); err == nil {
			return &s
		}
	}
	logger.Warn("summarizer did not return JSON, keeping raw text")
	return &news.Summary{Raw: raw}
}

// parseClassification converts raw model output into a classification,
// defaulting to Informative at 0.5 confidence when the JSON does not
// parse. The reason then carries the first 200 characters of the raw
// response.
func parseClassification(raw string) *news.Classification {
	if body, ok := extractJSON(raw); ok {
		var c news.Classification
		if err := json.Unmarshal([]byte(body), &c); err == nil && c.Label != "" {
			return &c
		}
	}
	return &news.Classification{
		Label:      news.LabelInformative,
		Confidence: 0.5,
		Reason:     truncateRunes(raw, 200),
	}
}

// sanitizeContent collapses whitespace and bounds the article text on a
// rune boundary, trimming back to a sentence end when one is close.
func sanitizeContent(content string) string {
	content = strings.ReplaceAll(content, "\r", "")
	content = strings.Join(strings.Fields(content), " ")

	if utf8.RuneCountInString(content) <= maxPromptRunes {
		return content
	}

	runes := []rune(content)
	trimmed := string(runes[:maxPromptRunes])
	if idx := strings.LastIndex(trimmed, ". "); idx > 1200 {
		trimmed = trimmed[:idx+1]
	}
	return trimmed + "\n[TRUNCATED]"
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func joinFacts(facts []string) string {
	return strings.Join(facts, "\n")
}
