package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	apperrors "github.com/joshuaIsweety/GoogleAIStudio-DND/internal/errors"
	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/logger"
)

// Narration backends.
const (
	BackendGemini = "gemini"
	BackendOpenAI = "openai"
)

// Illustration backends.
const (
	IllustratorImagen = "imagen"
	IllustratorOpenAI = "openai"
	IllustratorNone   = "none"
)

// Config holds all application settings.
type Config struct {
	Logger      logger.Config
	Story       StoryConfig
	Image       ImageConfig
	Gemini      GeminiConfig
	OpenAI      OpenAIConfig
	Supabase    SupabaseConfig
	MetricsAddr string `env:"METRICS_ADDR"`
}

// StoryConfig controls narrative generation.
type StoryConfig struct {
	Backend     string  `env:"DND_BACKEND" env-default:"gemini"`
	Model       string  `env:"DND_MODEL" env-default:"gemini-2.5-flash"`
	Temperature float32 `env:"DND_TEMPERATURE" env-default:"0.8"`
	TopP        float32 `env:"DND_TOP_P" env-default:"0.9"`
	TopK        int32   `env:"DND_TOP_K" env-default:"40"`
}

// ImageConfig controls scene illustration.
type ImageConfig struct {
	Illustrator string `env:"DND_ILLUSTRATOR" env-default:"imagen"`
	Model       string `env:"DND_IMAGE_MODEL" env-default:"imagen-3.0-generate-002"`
	AspectRatio string `env:"DND_IMAGE_ASPECT_RATIO" env-default:"16:9"`
	MIMEType    string `env:"DND_IMAGE_MIME_TYPE" env-default:"image/jpeg"`
	StyleSuffix string `env:"DND_IMAGE_STYLE_SUFFIX" env-default:", fantasy concept art, dramatic lighting, painterly, no text"`
	TimeoutSec  int    `env:"DND_IMAGE_TIMEOUT_SEC" env-default:"60"`
}

// GeminiConfig holds Google AI credentials. BaseURL is the REST root used
// for Imagen; Endpoint, when set, points the generative-ai client elsewhere.
type GeminiConfig struct {
	APIKey   string `env:"GEMINI_API_KEY"`
	BaseURL  string `env:"GEMINI_BASE_URL" env-default:"https://generativelanguage.googleapis.com/v1beta"`
	Endpoint string `env:"GEMINI_ENDPOINT"`
}

// OpenAIConfig holds credentials for an OpenAI-compatible endpoint.
type OpenAIConfig struct {
	APIKey     string `env:"OPENAI_API_KEY"`
	BaseURL    string `env:"OPENAI_BASE_URL"`
	Model      string `env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
	ImageModel string `env:"OPENAI_IMAGE_MODEL" env-default:"dall-e-3"`
}

// SupabaseConfig enables the adventure chronicle when both fields are set.
type SupabaseConfig struct {
	URL   string `env:"SUPABASE_URL"`
	Key   string `env:"SUPABASE_KEY"`
	Table string `env:"SUPABASE_TABLE" env-default:"adventures"`
}

// Enabled reports whether chronicle credentials are present.
func (s SupabaseConfig) Enabled() bool {
	return s.URL != "" && s.Key != ""
}

// Load reads configuration from the environment and an optional .env file.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// AI Studio exports the key as API_KEY.
	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = os.Getenv("API_KEY")
	}

	cfg.Story.Backend = strings.ToLower(strings.TrimSpace(cfg.Story.Backend))
	cfg.Image.Illustrator = strings.ToLower(strings.TrimSpace(cfg.Image.Illustrator))

	return &cfg, nil
}

// Validate checks that the selected backends have what they need.
func (c *Config) Validate() error {
	switch c.Story.Backend {
	case BackendGemini:
		if c.Gemini.APIKey == "" {
			return apperrors.NewConfig("GEMINI_API_KEY (or API_KEY) is required for the gemini backend")
		}
	case BackendOpenAI:
		if c.OpenAI.APIKey == "" {
			return apperrors.NewConfig("OPENAI_API_KEY is required for the openai backend")
		}
	default:
		return apperrors.NewConfig(fmt.Sprintf("unknown story backend %q (want gemini or openai)", c.Story.Backend))
	}

	switch c.Image.Illustrator {
	case IllustratorNone:
	case IllustratorImagen:
		if c.Gemini.APIKey == "" {
			return apperrors.NewConfig("GEMINI_API_KEY (or API_KEY) is required for the imagen illustrator")
		}
	case IllustratorOpenAI:
		if c.OpenAI.APIKey == "" {
			return apperrors.NewConfig("OPENAI_API_KEY is required for the openai illustrator")
		}
	default:
		return apperrors.NewConfig(fmt.Sprintf("unknown illustrator %q (want imagen, openai or none)", c.Image.Illustrator))
	}

	if c.Story.Temperature < 0 || c.Story.Temperature > 2 {
		return apperrors.NewConfig("DND_TEMPERATURE must be between 0 and 2")
	}
	if c.Story.TopP < 0 || c.Story.TopP > 1 {
		return apperrors.NewConfig("DND_TOP_P must be between 0 and 1")
	}
	if c.Story.TopK < 0 {
		return apperrors.NewConfig("DND_TOP_K must not be negative")
	}
	if (c.Supabase.URL == "") != (c.Supabase.Key == "") {
		return apperrors.NewConfig("SUPABASE_URL and SUPABASE_KEY must be set together")
	}
	return nil
}

// NarrationModel is the text model of the selected backend.
func (c *Config) NarrationModel() string {
	if c.Story.Backend == BackendOpenAI {
		return c.OpenAI.Model
	}
	return c.Story.Model
}

// SetNarrationModel overrides the text model of the selected backend.
func (c *Config) SetNarrationModel(model string) {
	if c.Story.Backend == BackendOpenAI {
		c.OpenAI.Model = model
		return
	}
	c.Story.Model = model
}
