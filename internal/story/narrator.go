package story

import "context"

// Request is one text-generation call.
type Request struct {
	SystemInstruction string
	Prompt            string
}

// Params are the sampling settings shared by all narrators.
type Params struct {
	Temperature float32
	TopP        float32
	TopK        int32
}

// DefaultParams matches the tuning the adventure prompts were written for.
var DefaultParams = Params{Temperature: 0.8, TopP: 0.9, TopK: 40}

// Narrator sends a prompt to a text model that answers with story JSON and
// returns the raw response text.
type Narrator interface {
	Narrate(ctx context.Context, req Request) (string, error)
	// Backend and Model label metrics and logs.
	Backend() string
	Model() string
}

// Illustrator renders a scene description to a displayable image reference.
// An empty string with a nil error means the service returned no image.
type Illustrator interface {
	Illustrate(ctx context.Context, prompt string) (string, error)
	Backend() string
}

// NoIllustrator disables pictures.
type NoIllustrator struct{}

// Illustrate always returns no image.
func (NoIllustrator) Illustrate(context.Context, string) (string, error) { return "", nil }

// Backend implements Illustrator.
func (NoIllustrator) Backend() string { return "none" }
