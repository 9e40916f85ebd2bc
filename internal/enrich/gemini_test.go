package enrich

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseTextExtractsFirstPart(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"label":"Informative"}`)}}},
		},
	}

	text, err := responseText(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"label":"Informative"}`, text)
}

func TestResponseTextNoCandidates(t *testing.T) {
	_, err := responseText(&genai.GenerateContentResponse{})
	assert.ErrorContains(t, err, "no response from Gemini")
}

func TestResponseTextSafetyBlockedCandidate(t *testing.T) {
	// A blocked candidate carries a FinishReason but no Content; the
	// extraction must return an error, not dereference nil.
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{FinishReason: genai.FinishReasonSafety, Content: nil},
		},
	}

	_, err := responseText(resp)
	assert.ErrorContains(t, err, "no response from Gemini")
}

func TestResponseTextEmptyParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{}},
		},
	}

	_, err := responseText(resp)
	assert.ErrorContains(t, err, "no response from Gemini")
}
