package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/config"
)

func TestGeminiClientOptions(t *testing.T) {
	cfg := &config.Config{Gemini: config.GeminiConfig{APIKey: "key"}}
	assert.Len(t, geminiClientOptions(cfg), 1)

	cfg.Gemini.Endpoint = "http://localhost:8089"
	assert.Len(t, geminiClientOptions(cfg), 2, "endpoint override is passed to the client")
}
