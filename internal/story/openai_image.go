package story

import (
	"context"

	openaigo "github.com/sashabaranov/go-openai"
)

// OpenAIIllustrator uses the OpenAI images API.
type OpenAIIllustrator struct {
	client *openaigo.Client
	model  string
	size   string
}

// NewOpenAIIllustrator maps an aspect ratio such as "16:9" onto the nearest
// size the images API accepts.
func NewOpenAIIllustrator(client *openaigo.Client, model, aspectRatio string) *OpenAIIllustrator {
	return &OpenAIIllustrator{client: client, model: model, size: imageSizeFor(aspectRatio)}
}

// Backend implements Illustrator.
func (i *OpenAIIllustrator) Backend() string { return "openai" }

// Illustrate requests one base64 image and returns it as a PNG data URI,
// or the hosted URL if the endpoint ignores the requested format.
func (i *OpenAIIllustrator) Illustrate(ctx context.Context, prompt string) (string, error) {
	resp, err := i.client.CreateImage(ctx, openaigo.ImageRequest{
		Prompt:         prompt,
		Model:          i.model,
		N:              1,
		Size:           i.size,
		ResponseFormat: openaigo.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return "", err
	}
	for _, img := range resp.Data {
		if img.B64JSON != "" {
			return dataURI("image/png", img.B64JSON), nil
		}
		if img.URL != "" {
			return img.URL, nil
		}
	}
	return "", nil
}

func imageSizeFor(aspectRatio string) string {
	switch aspectRatio {
	case "16:9", "4:3", "3:2":
		return openaigo.CreateImageSize1792x1024
	case "9:16", "3:4", "2:3":
		return openaigo.CreateImageSize1024x1792
	default:
		return openaigo.CreateImageSize1024x1024
	}
}
