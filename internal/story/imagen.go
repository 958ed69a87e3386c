package story

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ImagenConfig configures the Imagen illustrator.
type ImagenConfig struct {
	BaseURL     string // e.g. https://generativelanguage.googleapis.com/v1beta
	APIKey      string
	Model       string
	AspectRatio string
	MIMEType    string
	Timeout     time.Duration
}

// ImagenIllustrator calls the Imagen predict endpoint of the Gemini API.
type ImagenIllustrator struct {
	cfg        ImagenConfig
	httpClient *http.Client
}

// NewImagenIllustrator creates an illustrator with its own HTTP client.
func NewImagenIllustrator(cfg ImagenConfig) *ImagenIllustrator {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if cfg.MIMEType == "" {
		cfg.MIMEType = "image/jpeg"
	}
	return &ImagenIllustrator{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Backend implements Illustrator.
func (i *ImagenIllustrator) Backend() string { return "imagen" }

type imagenRequest struct {
	Instances  []imagenInstance `json:"instances"`
	Parameters imagenParameters `json:"parameters"`
}

type imagenInstance struct {
	Prompt string `json:"prompt"`
}

type imagenParameters struct {
	SampleCount   int                 `json:"sampleCount"`
	AspectRatio   string              `json:"aspectRatio,omitempty"`
	OutputOptions imagenOutputOptions `json:"outputOptions"`
}

type imagenOutputOptions struct {
	MIMEType string `json:"mimeType"`
}

type imagenResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MIMEType           string `json:"mimeType"`
	} `json:"predictions"`
}

// Illustrate requests one image and returns it as a data URI. Zero
// predictions (e.g. filtered by safety settings) is not an error.
func (i *ImagenIllustrator) Illustrate(ctx context.Context, prompt string) (string, error) {
	payload := imagenRequest{
		Instances: []imagenInstance{{Prompt: prompt}},
		Parameters: imagenParameters{
			SampleCount:   1,
			AspectRatio:   i.cfg.AspectRatio,
			OutputOptions: imagenOutputOptions{MIMEType: i.cfg.MIMEType},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request payload: %w", err)
	}

	endpointURL := fmt.Sprintf("%s/models/%s:predict", strings.TrimRight(i.cfg.BaseURL, "/"), i.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", i.cfg.APIKey)

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBody))
	}
	if readErr != nil {
		return "", fmt.Errorf("failed to read response body: %w", readErr)
	}

	var out imagenResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	for _, p := range out.Predictions {
		if p.BytesBase64Encoded == "" {
			continue
		}
		mime := p.MIMEType
		if mime == "" {
			mime = i.cfg.MIMEType
		}
		return dataURI(mime, p.BytesBase64Encoded), nil
	}
	return "", nil
}

func dataURI(mimeType, b64 string) string {
	return "data:" + mimeType + ";base64," + b64
}
