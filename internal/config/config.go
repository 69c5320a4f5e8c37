package config

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Model      ModelConfig      `yaml:"model"`
	Transcript TranscriptConfig `yaml:"transcript"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Output     OutputConfig     `yaml:"output"`
	Watch      WatchConfig      `yaml:"watch"`
	Logging    LoggingConfig    `yaml:"logging"`

	// Keys is read from the environment only.
	Keys KeysConfig `yaml:"-"`
}

type ModelConfig struct {
	Provider          string        `yaml:"provider"            env:"TUBESUM_PROVIDER"`
	Name              string        `yaml:"name"                env:"TUBESUM_MODEL"`
	APIKey            string        `yaml:"api_key"             env:"TUBESUM_API_KEY"`
	BaseURL           string        `yaml:"base_url"            env:"TUBESUM_BASE_URL"`
	MaxContext        int           `yaml:"max_context"         env:"TUBESUM_MAX_CONTEXT"`
	MaxTokens         int           `yaml:"max_tokens"          env:"TUBESUM_MAX_TOKENS"`
	Temperature       float64       `yaml:"temperature"         env:"TUBESUM_TEMPERATURE"`
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"TUBESUM_REQUESTS_PER_MINUTE"`
	Timeout           time.Duration `yaml:"timeout"             env:"TUBESUM_TIMEOUT"`
}

type TranscriptConfig struct {
	Source    string        `yaml:"source"     env:"TUBESUM_TRANSCRIPT_SOURCE"`
	Languages []string      `yaml:"languages"  env:"TUBESUM_LANGUAGES" envSeparator:","`
	YtDlpPath string        `yaml:"ytdlp_path" env:"TUBESUM_YTDLP_PATH"`
	Timeout   time.Duration `yaml:"timeout"    env:"TUBESUM_TRANSCRIPT_TIMEOUT"`
}

type PipelineConfig struct {
	Detailed       bool   `yaml:"detailed"        env:"TUBESUM_DETAILED"`
	Mode           string `yaml:"mode"            env:"TUBESUM_MODE"`
	MaxConcurrent  int    `yaml:"max_concurrent"  env:"TUBESUM_MAX_CONCURRENT"`
	MergeThreshold int    `yaml:"merge_threshold" env:"TUBESUM_MERGE_THRESHOLD"`
}

type OutputConfig struct {
	Format string `yaml:"format" env:"TUBESUM_FORMAT"`
	Path   string `yaml:"path"   env:"TUBESUM_OUTPUT"`
	Dir    string `yaml:"dir"    env:"TUBESUM_OUTPUT_DIR"`
}

type WatchConfig struct {
	Input         string `yaml:"input"          env:"TUBESUM_WATCH_INPUT"`
	Archived      string `yaml:"archived"       env:"TUBESUM_WATCH_ARCHIVED"`
	MaxConcurrent int    `yaml:"max_concurrent" env:"TUBESUM_WATCH_MAX_CONCURRENT"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"  env:"TUBESUM_LOG_LEVEL"`
	Format string `yaml:"format" env:"TUBESUM_LOG_FORMAT"`
}

type KeysConfig struct {
	OpenAI    string `env:"OPENAI_API_KEY"`
	Anthropic string `env:"ANTHROPIC_API_KEY"`
	Gemini    string `env:"GEMINI_API_KEY"`
	Google    string `env:"GOOGLE_API_KEY"`
	OllamaURL string `env:"OLLAMA_HOST"`
}

var defaultModels = map[string]string{
	"openai":    "gpt-4o-mini",
	"anthropic": "claude-3-5-haiku-latest",
	"gemini":    "gemini-2.5-flash",
	"ollama":    "llama3.1",
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			Provider:    "openai",
			MaxContext:  4096,
			MaxTokens:   512,
			Temperature: 0.1,
			Timeout:     60 * time.Second,
		},
		Transcript: TranscriptConfig{
			Source:    "youtube",
			Languages: []string{"en"},
			Timeout:   30 * time.Second,
		},
		Pipeline: PipelineConfig{
			Mode:           "sequential",
			MergeThreshold: 1024,
		},
		Output: OutputConfig{
			Format: "text",
			Dir:    "data/output",
		},
		Watch: WatchConfig{
			Input:         "data/input",
			Archived:      "data/archived",
			MaxConcurrent: 2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks the configuration and fills defaults for unset fields.
func (c *Config) Validate() error {
	c.Model.Provider = strings.ToLower(strings.TrimSpace(c.Model.Provider))
	if c.Model.Provider == "" {
		c.Model.Provider = "openai"
	}
	if _, ok := defaultModels[c.Model.Provider]; !ok {
		return fmt.Errorf("model.provider %q is not supported (want openai, anthropic, gemini or ollama)", c.Model.Provider)
	}
	if c.Model.Name == "" {
		c.Model.Name = defaultModels[c.Model.Provider]
	}
	if c.Model.MaxContext < 0 || c.Model.MaxTokens < 0 {
		return fmt.Errorf("model.max_context and model.max_tokens must not be negative")
	}
	if c.Model.MaxContext == 0 {
		c.Model.MaxContext = 4096
	}
	if c.Model.MaxTokens >= c.Model.MaxContext {
		return fmt.Errorf("model.max_tokens (%d) must be smaller than model.max_context (%d)", c.Model.MaxTokens, c.Model.MaxContext)
	}
	if c.Model.Temperature < 0 || c.Model.Temperature > 2 {
		return fmt.Errorf("model.temperature must be between 0 and 2, got %v", c.Model.Temperature)
	}
	if c.Model.RequestsPerMinute < 0 {
		return fmt.Errorf("model.requests_per_minute must not be negative")
	}
	if c.Model.Timeout == 0 {
		c.Model.Timeout = 60 * time.Second
	}

	c.Transcript.Source = strings.ToLower(strings.TrimSpace(c.Transcript.Source))
	switch c.Transcript.Source {
	case "":
		c.Transcript.Source = "youtube"
	case "youtube", "ytdlp":
	default:
		return fmt.Errorf("transcript.source %q is not supported (want youtube or ytdlp)", c.Transcript.Source)
	}
	if len(c.Transcript.Languages) == 0 {
		c.Transcript.Languages = []string{"en"}
	}
	if c.Transcript.Timeout == 0 {
		c.Transcript.Timeout = 30 * time.Second
	}

	switch c.Pipeline.Mode {
	case "":
		c.Pipeline.Mode = "sequential"
	case "sequential", "concurrent":
	default:
		return fmt.Errorf("pipeline.mode %q is not supported (want sequential or concurrent)", c.Pipeline.Mode)
	}
	if c.Pipeline.MaxConcurrent < 0 {
		return fmt.Errorf("pipeline.max_concurrent must not be negative")
	}
	// 0 is kept: merge whenever there are two or more partial summaries.
	if c.Pipeline.MergeThreshold < 0 {
		return fmt.Errorf("pipeline.merge_threshold must not be negative")
	}

	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "data/output"
	}

	if c.Watch.Input == "" {
		c.Watch.Input = "data/input"
	}
	if c.Watch.Archived == "" {
		c.Watch.Archived = "data/archived"
	}
	if c.Watch.MaxConcurrent == 0 {
		c.Watch.MaxConcurrent = 2
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	return nil
}

// APIKey returns the key for the configured provider. model.api_key wins
// over the provider's own environment variable.
func (c *Config) APIKey() string {
	if c.Model.APIKey != "" {
		return c.Model.APIKey
	}
	switch c.Model.Provider {
	case "openai":
		return c.Keys.OpenAI
	case "anthropic":
		return c.Keys.Anthropic
	case "gemini":
		if c.Keys.Gemini != "" {
			return c.Keys.Gemini
		}
		return c.Keys.Google
	default:
		return ""
	}
}

// BaseURL returns the API endpoint override, falling back to OLLAMA_HOST for ollama.
func (c *Config) BaseURL() string {
	if c.Model.BaseURL != "" {
		return c.Model.BaseURL
	}
	if c.Model.Provider == "ollama" {
		return c.Keys.OllamaURL
	}
	return ""
}
