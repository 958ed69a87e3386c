package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/chronicle"
	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/config"
	apperrors "github.com/joshuaIsweety/GoogleAIStudio-DND/internal/errors"
	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/session"
	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/story"
	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/terminal"
)

// runGame drives one engine from the terminal until the player quits or
// input ends.
func runGame(ctx context.Context, engine *session.Engine, ui *terminal.UI) error {
	ui.Banner()
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		s := engine.Snapshot()
		var err error
		switch s.Phase {
		case session.PhaseCharacterCreation:
			err = createCharacter(ctx, engine, ui)
		case session.PhasePlaying:
			if len(s.PendingChoices) == 0 {
				ui.ShowNotice(terminal.MsgNoChoices)
				return nil
			}
			err = selectChoice(ctx, engine, ui, s.PendingChoices)
		case session.PhaseVictory, session.PhaseGameOver:
			var again bool
			again, err = ui.PromptPlayAgain()
			if err == nil && !again {
				return nil
			}
			if err == nil {
				err = engine.PlayAgain()
			}
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func createCharacter(ctx context.Context, engine *session.Engine, ui *terminal.UI) error {
	name, class, err := ui.PromptCharacter()
	if err != nil {
		return err
	}
	return intentResult(engine.CreateCharacter(ctx, name, class), ui)
}

func selectChoice(ctx context.Context, engine *session.Engine, ui *terminal.UI, choices []string) error {
	choice, err := ui.PromptChoice(choices)
	if err != nil {
		return err
	}
	return intentResult(engine.SelectChoice(ctx, choice), ui)
}

// intentResult separates errors the player can recover from (already shown
// through the session's LastError, or shown here) from fatal ones.
func intentResult(err error, ui *terminal.UI) error {
	switch apperrors.CodeOf(err) {
	case "":
		return nil
	case apperrors.ErrValidation:
		var ge *apperrors.GameError
		if errors.As(err, &ge) {
			ui.ShowError(ge.Message)
		}
		return nil
	case apperrors.ErrMalformedResponse, apperrors.ErrServiceFailure, apperrors.ErrBusy:
		return nil
	default:
		return err
	}
}

// newNarrator builds the text backend selected in cfg. The returned close
// function releases the underlying client.
func newNarrator(ctx context.Context, cfg *config.Config) (story.Narrator, func() error, error) {
	params := story.Params{
		Temperature: cfg.Story.Temperature,
		TopP:        cfg.Story.TopP,
		TopK:        cfg.Story.TopK,
	}

	switch cfg.Story.Backend {
	case config.BackendOpenAI:
		return story.NewOpenAINarrator(newOpenAIClient(cfg), cfg.NarrationModel(), params), func() error { return nil }, nil
	default:
		client, err := genai.NewClient(ctx, geminiClientOptions(cfg)...)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Generative client: %w", err)
		}
		return story.NewGeminiNarrator(client, cfg.NarrationModel(), params), client.Close, nil
	}
}

func geminiClientOptions(cfg *config.Config) []option.ClientOption {
	opts := []option.ClientOption{option.WithAPIKey(cfg.Gemini.APIKey)}
	if cfg.Gemini.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Gemini.Endpoint))
	}
	return opts
}

// newIllustrator builds the image backend selected in cfg.
func newIllustrator(cfg *config.Config) story.Illustrator {
	switch cfg.Image.Illustrator {
	case config.IllustratorImagen:
		return story.NewImagenIllustrator(story.ImagenConfig{
			BaseURL:     cfg.Gemini.BaseURL,
			APIKey:      cfg.Gemini.APIKey,
			Model:       cfg.Image.Model,
			AspectRatio: cfg.Image.AspectRatio,
			MIMEType:    cfg.Image.MIMEType,
			Timeout:     time.Duration(cfg.Image.TimeoutSec) * time.Second,
		})
	case config.IllustratorOpenAI:
		return story.NewOpenAIIllustrator(newOpenAIClient(cfg), cfg.OpenAI.ImageModel, cfg.Image.AspectRatio)
	default:
		return story.NoIllustrator{}
	}
}

func newOpenAIClient(cfg *config.Config) *openaigo.Client {
	oc := openaigo.DefaultConfig(cfg.OpenAI.APIKey)
	if cfg.OpenAI.BaseURL != "" {
		oc.BaseURL = cfg.OpenAI.BaseURL
	}
	return openaigo.NewClientWithConfig(oc)
}

// newRecorder returns the Supabase chronicle when configured, else a no-op.
func newRecorder(cfg *config.Config, log *zap.Logger) (chronicle.Recorder, error) {
	if !cfg.Supabase.Enabled() {
		log.Info("Chronicle disabled")
		return chronicle.Nop{}, nil
	}
	rec, err := chronicle.NewSupabase(cfg.Supabase.URL, cfg.Supabase.Key, cfg.Supabase.Table)
	if err != nil {
		return nil, err
	}
	log.Info("Successfully connected to Supabase", zap.String("table", cfg.Supabase.Table))
	return rec, nil
}

// startMetricsServer serves /metrics and /health on addr until ctx ends.
func startMetricsServer(ctx context.Context, addr string, log *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status": "ok"}`))
	})

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info("Starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Metrics server failed", zap.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}
