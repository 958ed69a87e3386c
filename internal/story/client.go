package story

import (
	"context"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/joshuaIsweety/GoogleAIStudio-DND/internal/errors"
	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/game"
)

// Client turns characters and transcripts into prompts, calls the narrator
// and illustrator, and validates what comes back.
type Client struct {
	narrator    Narrator
	illustrator Illustrator
	styleSuffix string
	logger      *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithIllustrator enables scene pictures.
func WithIllustrator(i Illustrator) Option {
	return func(c *Client) { c.illustrator = i }
}

// WithStyleSuffix appends art direction to every illustration prompt.
func WithStyleSuffix(s string) Option {
	return func(c *Client) { c.styleSuffix = s }
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a story client around a narrator.
func NewClient(narrator Narrator, opts ...Option) *Client {
	c := &Client{
		narrator:    narrator,
		illustrator: NoIllustrator{},
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StartStory asks for the opening scene of a new adventure.
func (c *Client) StartStory(ctx context.Context, ch game.Character) (game.Segment, error) {
	return c.generate(ctx, "start", Request{
		SystemInstruction: SystemInstruction(ch),
		Prompt:            OpeningPrompt(ch),
	})
}

// ContinueStory sends the full transcript and the chosen action and returns
// the next scene.
func (c *Client) ContinueStory(ctx context.Context, ch game.Character, transcript game.Transcript, choice string) (game.Segment, error) {
	return c.generate(ctx, "continue", Request{
		SystemInstruction: SystemInstruction(ch),
		Prompt:            ContinuationPrompt(transcript.Lines(), choice),
	})
}

// Illustrate is best effort: any failure is logged and reported as no image.
func (c *Client) Illustrate(ctx context.Context, storyText string) string {
	backend := c.illustrator.Backend()
	log := c.logger.With(zap.String("illustrator", backend))

	url, err := c.illustrator.Illustrate(ctx, IllustrationPrompt(storyText, c.styleSuffix))
	if err != nil {
		illustrationRequestsTotal.WithLabelValues(backend, "error").Inc()
		log.Warn("Illustration failed, continuing without image",
			zap.Error(apperrors.NewIllustrationFailure("illustrate scene", err)))
		return ""
	}
	if url == "" {
		illustrationRequestsTotal.WithLabelValues(backend, "empty").Inc()
		log.Info("Illustrator returned no image")
		return ""
	}
	illustrationRequestsTotal.WithLabelValues(backend, "success").Inc()
	log.Debug("Scene illustrated", zap.Int("ref_bytes", len(url)))
	return url
}

func (c *Client) generate(ctx context.Context, kind string, req Request) (game.Segment, error) {
	backend, model := c.narrator.Backend(), c.narrator.Model()
	log := c.logger.With(
		zap.String("backend", backend),
		zap.String("model", model),
		zap.String("kind", kind),
	)
	log.Debug("Sending story request", zap.Int("prompt_bytes", len(req.Prompt)))

	start := time.Now()
	text, err := c.narrator.Narrate(ctx, req)
	duration := time.Since(start)
	storyRequestDuration.WithLabelValues(backend, model).Observe(duration.Seconds())

	if err != nil {
		storyRequestsTotal.WithLabelValues(backend, model, kind, "error").Inc()
		log.Error("Story request failed", zap.Duration("duration", duration), zap.Error(err))
		return game.Segment{}, apperrors.NewServiceFailure("story request failed", err)
	}

	seg, repairs, err := Decode(text)
	if err != nil {
		storyRequestsTotal.WithLabelValues(backend, model, kind, "malformed").Inc()
		log.Error("Story response rejected",
			zap.Duration("duration", duration),
			zap.String("response", text),
			zap.Error(err))
		return game.Segment{}, err
	}

	for _, r := range repairs {
		storyRepairsTotal.WithLabelValues(string(r)).Inc()
	}
	if len(repairs) > 0 {
		log.Warn("Story response repaired", zap.Any("repairs", repairs))
	}

	storyRequestsTotal.WithLabelValues(backend, model, kind, "success").Inc()
	log.Info("Story segment received",
		zap.Duration("duration", duration),
		zap.String("outcome", string(seg.Outcome)),
		zap.Int("choices", len(seg.Choices)))
	return seg, nil
}
