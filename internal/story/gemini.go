package story

import (
	"context"

	"github.com/google/generative-ai-go/genai"
)

// GeminiNarrator generates story JSON with the Google generative AI SDK,
// using the SDK's native response schema support.
type GeminiNarrator struct {
	client *genai.Client
	model  string
	params Params
}

// NewGeminiNarrator wraps an existing genai client. The caller owns the
// client and closes it.
func NewGeminiNarrator(client *genai.Client, model string, params Params) *GeminiNarrator {
	return &GeminiNarrator{client: client, model: model, params: params}
}

// Backend implements Narrator.
func (n *GeminiNarrator) Backend() string { return "gemini" }

// Model implements Narrator.
func (n *GeminiNarrator) Model() string { return n.model }

// Narrate issues a single GenerateContent call. The system instruction is
// per character, so a model handle is configured for every request.
func (n *GeminiNarrator) Narrate(ctx context.Context, req Request) (string, error) {
	model := n.generativeModel(req.SystemInstruction)
	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", err
	}
	return getText(resp), nil
}

func (n *GeminiNarrator) generativeModel(systemInstruction string) *genai.GenerativeModel {
	model := n.client.GenerativeModel(n.model)
	model.SetTemperature(n.params.Temperature)
	model.SetTopP(n.params.TopP)
	if n.params.TopK > 0 {
		model.SetTopK(n.params.TopK)
	}
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = geminiResponseSchema()
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}
	return model
}

// getText concatenates the text parts of the first candidate.
func getText(resp *genai.GenerateContentResponse) string {
	var text string
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				text += string(txt)
			}
		}
	}
	return text
}
