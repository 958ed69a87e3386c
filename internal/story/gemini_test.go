package story

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func newTestGenaiClient(t *testing.T) *genai.Client {
	t.Helper()
	client, err := genai.NewClient(context.Background(), option.WithAPIKey("test"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestGeminiNarrator_GenerativeModel(t *testing.T) {
	n := NewGeminiNarrator(newTestGenaiClient(t), "gemini-2.5-flash", DefaultParams)

	assert.Equal(t, "gemini", n.Backend())
	assert.Equal(t, "gemini-2.5-flash", n.Model())

	model := n.generativeModel("be a dungeon master")

	require.NotNil(t, model.Temperature)
	assert.InDelta(t, 0.8, *model.Temperature, 1e-6)
	require.NotNil(t, model.TopP)
	assert.InDelta(t, 0.9, *model.TopP, 1e-6)
	require.NotNil(t, model.TopK)
	assert.Equal(t, int32(40), *model.TopK)
	assert.Equal(t, "application/json", model.ResponseMIMEType)

	require.NotNil(t, model.ResponseSchema)
	assert.Equal(t, genai.TypeObject, model.ResponseSchema.Type)
	assert.ElementsMatch(t, []string{"story", "choices", "outcome"}, model.ResponseSchema.Required)
	assert.Equal(t, []string{"continue", "victory", "game_over"}, model.ResponseSchema.Properties["outcome"].Enum)

	require.NotNil(t, model.SystemInstruction)
	require.Len(t, model.SystemInstruction.Parts, 1)
	assert.Equal(t, genai.Text("be a dungeon master"), model.SystemInstruction.Parts[0])
}

func TestGeminiNarrator_ZeroTopKNotSent(t *testing.T) {
	n := NewGeminiNarrator(newTestGenaiClient(t), "gemini-2.5-flash", Params{Temperature: 1, TopP: 1})

	model := n.generativeModel("x")
	assert.Nil(t, model.TopK)
}

func TestGetText(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{"nil response", nil, ""},
		{"no candidates", &genai.GenerateContentResponse{}, ""},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, ""},
		{
			name: "joins text parts",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []genai.Part{
					genai.Text(`{"story":`),
					genai.Blob{MIMEType: "image/png"},
					genai.Text(`"x"}`),
				}},
			}}},
			want: `{"story":"x"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, getText(tt.resp))
		})
	}
}
