package story

import (
	"context"
	"errors"

	openaigo "github.com/sashabaranov/go-openai"
)

// OpenAINarrator generates story JSON through any OpenAI-compatible chat
// completion endpoint, constrained by a json_schema response format.
type OpenAINarrator struct {
	client *openaigo.Client
	model  string
	params Params
}

// NewOpenAINarrator wraps a go-openai client.
func NewOpenAINarrator(client *openaigo.Client, model string, params Params) *OpenAINarrator {
	return &OpenAINarrator{client: client, model: model, params: params}
}

// Backend implements Narrator.
func (n *OpenAINarrator) Backend() string { return "openai" }

// Model implements Narrator.
func (n *OpenAINarrator) Model() string { return n.model }

// Narrate sends the system instruction and prompt as a two-message chat.
// TopK has no OpenAI equivalent and is not sent.
func (n *OpenAINarrator) Narrate(ctx context.Context, req Request) (string, error) {
	messages := []openaigo.ChatCompletionMessage{
		{Role: openaigo.ChatMessageRoleSystem, Content: req.SystemInstruction},
		{Role: openaigo.ChatMessageRoleUser, Content: req.Prompt},
	}

	resp, err := n.client.CreateChatCompletion(ctx, openaigo.ChatCompletionRequest{
		Model:       n.model,
		Messages:    messages,
		Temperature: n.params.Temperature,
		TopP:        n.params.TopP,
		ResponseFormat: &openaigo.ChatCompletionResponseFormat{
			Type: openaigo.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openaigo.ChatCompletionResponseFormatJSONSchema{
				Name:   "story_segment",
				Schema: openAIResponseSchema(),
			},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
