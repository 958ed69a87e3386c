package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/config"
	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/logger"
	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/session"
	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/story"
	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/terminal"
)

// newCLIApp creates the CLI application with all commands. Game input is
// read from in and the game is printed to out.
func newCLIApp(in io.Reader, out io.Writer) *cli.App {
	app := &cli.App{
		Name:      "dnd",
		Usage:     "AI dungeon master text adventure",
		Version:   Version,
		Reader:    in,
		Writer:    out,
		ErrWriter: out,
		Commands: []*cli.Command{
			playCmd(in, out),
			versionCmd(out),
		},
		DefaultCommand: "play",
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// playCmd creates the play command.
func playCmd(in io.Reader, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Start an adventure in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "backend", Aliases: []string{"b"}, Usage: "Story backend: gemini|openai (default from DND_BACKEND)"},
			&cli.StringFlag{Name: "model", Aliases: []string{"m"}, Usage: "Text model for the selected backend"},
			&cli.StringFlag{Name: "illustrator", Aliases: []string{"i"}, Usage: "Image backend: imagen|openai|none (default from DND_ILLUSTRATOR)"},
			&cli.StringFlag{Name: "image-dir", Usage: "Write scene images to this directory"},
			&cli.StringFlag{Name: "metrics-addr", Usage: "Serve Prometheus metrics on this address, e.g. :9091"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applyFlags(c, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, err := logger.New(cfg.Logger)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			ctx := c.Context
			if cfg.MetricsAddr != "" {
				startMetricsServer(ctx, cfg.MetricsAddr, log)
			}

			narrator, closeNarrator, err := newNarrator(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = closeNarrator() }()

			recorder, err := newRecorder(cfg, log)
			if err != nil {
				return err
			}

			var uiOpts []terminal.Option
			if dir := c.String("image-dir"); dir != "" {
				images, err := terminal.NewImageWriter(dir)
				if err != nil {
					return err
				}
				log.Info("Saving scene images", zap.String("dir", images.Dir()))
				uiOpts = append(uiOpts, terminal.WithImageWriter(images))
			}
			ui := terminal.New(in, out, uiOpts...)

			teller := story.NewClient(narrator,
				story.WithIllustrator(newIllustrator(cfg)),
				story.WithStyleSuffix(cfg.Image.StyleSuffix),
				story.WithLogger(log.Named("story")))

			engine := session.NewEngine(teller,
				session.WithObserver(ui.Render),
				session.WithRecorder(recorder),
				session.WithLogger(log.Named("session")))

			log.Info("Game ready",
				zap.String("backend", narrator.Backend()),
				zap.String("model", narrator.Model()),
				zap.String("illustrator", cfg.Image.Illustrator))
			return runGame(ctx, engine, ui)
		},
	}
}

// versionCmd creates the version command.
func versionCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the version",
		Action: func(c *cli.Context) error {
			fmt.Fprintf(out, "dnd %s\n", Version)
			return nil
		},
	}
}

// applyFlags lets command line flags override environment configuration.
func applyFlags(c *cli.Context, cfg *config.Config) {
	if v := c.String("backend"); v != "" {
		cfg.Story.Backend = strings.ToLower(v)
	}
	if v := c.String("model"); v != "" {
		cfg.SetNarrationModel(v)
	}
	if v := c.String("illustrator"); v != "" {
		cfg.Image.Illustrator = strings.ToLower(v)
	}
	if v := c.String("metrics-addr"); v != "" {
		cfg.MetricsAddr = v
	}
}
