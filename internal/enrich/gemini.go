// Package enrich runs candidate items through the two-stage LLM
// enrichment: summarize, then classify.
package enrich

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/nandinisonar18/Health-Multi-Agent/internal/news"
)

// Client calls Gemini for both enrichment stages.
type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

const summarizePrompt = `You are a careful medical-news summarizer. Given the article text, produce:
1) A concise summary (3-5 sentences).
2) 3 bullet key facts (each 1 line).
3) Short note: uncertainty/limitations (1-2 lines).
4) A one-line consumer-facing recommendation: either 'Consult professional' or 'Information only' (do NOT give medical advice).

Output must be a JSON object exactly with keys: summary, key_facts (list), uncertainty, recommendation.

Title: %s
URL: %s

Article:
%s

Respond JSON only.`

// Summarize asks the model for a structured summary of the article.
// Unparseable output is not an error: it comes back as a degraded
// payload carrying the raw response.
func (c *Client) Summarize(ctx context.Context, title, url, content string) (*news.Summary, error) {
	prompt := fmt.Sprintf(summarizePrompt, title, url, sanitizeContent(content))

	raw, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseSummary(raw), nil
}

const classifyPrompt = `You are a classifier. Given the article title and summary, decide if the content should be labeled 'Actionable Advice' or 'Informative'.

DEFINITIONS:
- Actionable Advice: the text gives explicit step-by-step or clear recommendations meant for immediate action.
- Informative: background information, study results, data, or news without direct instructions.

Output ONLY a JSON object with keys: label (one of 'Actionable Advice' or 'Informative'), confidence (0-1), reason (one sentence).

Title: %s
Summary: %s
Key facts: %s

Respond JSON only.`

// Classify labels the summarized article. Unparseable output falls back
// to a default Informative classification rather than an error.
func (c *Client) Classify(ctx context.Context, title, summary string, keyFacts []string) (*news.Classification, error) {
	prompt := fmt.Sprintf(classifyPrompt, title, summary, joinFacts(keyFacts))

	raw, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseClassification(raw), nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return responseText(resp)
}

// responseText pulls the first text part out of a generation response.
// Safety-blocked candidates come back with a nil Content, so every
// level is checked before dereferencing.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}
	return fmt.Sprintf("%v", content.Parts[0]), nil
}
