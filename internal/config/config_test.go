package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "empty config gets defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			config:  Config{Model: ModelConfig{Provider: "bard"}},
			wantErr: true,
		},
		{
			name:    "unknown mode",
			config:  Config{Pipeline: PipelineConfig{Mode: "parallel"}},
			wantErr: true,
		},
		{
			name:    "unknown transcript source",
			config:  Config{Transcript: TranscriptConfig{Source: "vimeo"}},
			wantErr: true,
		},
		{
			name:    "response reserve larger than context",
			config:  Config{Model: ModelConfig{MaxContext: 1000, MaxTokens: 1000}},
			wantErr: true,
		},
		{
			name:    "temperature out of range",
			config:  Config{Model: ModelConfig{Temperature: 3}},
			wantErr: true,
		},
		{
			name:    "negative merge threshold",
			config:  Config{Pipeline: PipelineConfig{MergeThreshold: -1}},
			wantErr: true,
		},
		{
			name:    "negative concurrency",
			config:  Config{Pipeline: PipelineConfig{MaxConcurrent: -1}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFillsDefaults(t *testing.T) {
	cfg := Config{Model: ModelConfig{Provider: " Gemini "}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Model.Provider != "gemini" {
		t.Errorf("Provider = %q, want %q", cfg.Model.Provider, "gemini")
	}
	if cfg.Model.Name != "gemini-2.5-flash" {
		t.Errorf("Name = %q, want provider default", cfg.Model.Name)
	}
	if cfg.Model.MaxContext != 4096 {
		t.Errorf("MaxContext = %d, want 4096", cfg.Model.MaxContext)
	}
	if cfg.Pipeline.Mode != "sequential" {
		t.Errorf("Pipeline.Mode = %q, want sequential", cfg.Pipeline.Mode)
	}
	if !reflect.DeepEqual(cfg.Transcript.Languages, []string{"en"}) {
		t.Errorf("Languages = %v, want [en]", cfg.Transcript.Languages)
	}
	if cfg.Watch.MaxConcurrent != 2 {
		t.Errorf("Watch.MaxConcurrent = %d, want 2", cfg.Watch.MaxConcurrent)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
model:
  provider: anthropic
  max_context: 8192
  temperature: 0
  timeout: 90s

transcript:
  languages: [de, en]

pipeline:
  detailed: true
  mode: concurrent
  max_concurrent: 4
  merge_threshold: 0

logging:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Model.Provider != "anthropic" || cfg.Model.Name != "claude-3-5-haiku-latest" {
		t.Errorf("Model = %+v, want anthropic with its default model", cfg.Model)
	}
	if cfg.Model.MaxContext != 8192 {
		t.Errorf("MaxContext = %d, want 8192", cfg.Model.MaxContext)
	}
	if cfg.Model.Temperature != 0 {
		t.Errorf("Temperature = %v, want explicit 0 to be kept", cfg.Model.Temperature)
	}
	if cfg.Model.MaxTokens != 512 {
		t.Errorf("MaxTokens = %d, want default 512", cfg.Model.MaxTokens)
	}
	if cfg.Model.Timeout != 90*time.Second {
		t.Errorf("Timeout = %v, want 90s", cfg.Model.Timeout)
	}
	if !reflect.DeepEqual(cfg.Transcript.Languages, []string{"de", "en"}) {
		t.Errorf("Languages = %v, want [de en]", cfg.Transcript.Languages)
	}
	if !cfg.Pipeline.Detailed || cfg.Pipeline.Mode != "concurrent" || cfg.Pipeline.MaxConcurrent != 4 {
		t.Errorf("Pipeline = %+v", cfg.Pipeline)
	}
	if cfg.Pipeline.MergeThreshold != 0 {
		t.Errorf("MergeThreshold = %d, want explicit 0 to be kept", cfg.Pipeline.MergeThreshold)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "model:\n  provider: openai\n  name: gpt-4o\n")

	t.Setenv("TUBESUM_MODEL", "gpt-4.1-mini")
	t.Setenv("TUBESUM_LANGUAGES", "fr,en")
	t.Setenv("TUBESUM_MODE", "concurrent")
	t.Setenv("OPENAI_API_KEY", "sk-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Model.Name != "gpt-4.1-mini" {
		t.Errorf("Name = %q, want env override", cfg.Model.Name)
	}
	if !reflect.DeepEqual(cfg.Transcript.Languages, []string{"fr", "en"}) {
		t.Errorf("Languages = %v, want [fr en]", cfg.Transcript.Languages)
	}
	if cfg.Pipeline.Mode != "concurrent" {
		t.Errorf("Mode = %q, want concurrent", cfg.Pipeline.Mode)
	}
	if cfg.APIKey() != "sk-env" {
		t.Errorf("APIKey() = %q, want sk-env", cfg.APIKey())
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Model.Name != "gpt-4o-mini" {
		t.Errorf("Name = %q, want gpt-4o-mini", cfg.Model.Name)
	}
	if cfg.Pipeline.MergeThreshold != 1024 {
		t.Errorf("MergeThreshold = %d, want default 1024", cfg.Pipeline.MergeThreshold)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Fatal("Load() should return error for nonexistent file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load() error = %v, want fs.ErrNotExist", err)
	}

	_, err = Load(writeConfig(t, "model: [unclosed"))
	if err == nil {
		t.Error("Load() should return error for malformed YAML")
	}
}

func TestAPIKeyAndBaseURL(t *testing.T) {
	keys := KeysConfig{OpenAI: "o", Anthropic: "a", Google: "g", OllamaURL: "http://gpu:11434"}

	tests := []struct {
		provider string
		override string
		wantKey  string
		wantURL  string
	}{
		{provider: "openai", wantKey: "o"},
		{provider: "anthropic", wantKey: "a"},
		{provider: "gemini", wantKey: "g"},
		{provider: "ollama", wantKey: "", wantURL: "http://gpu:11434"},
		{provider: "openai", override: "explicit", wantKey: "explicit"},
	}

	for _, tt := range tests {
		cfg := Config{Model: ModelConfig{Provider: tt.provider, APIKey: tt.override}, Keys: keys}
		if got := cfg.APIKey(); got != tt.wantKey {
			t.Errorf("%s: APIKey() = %q, want %q", tt.provider, got, tt.wantKey)
		}
		if got := cfg.BaseURL(); got != tt.wantURL {
			t.Errorf("%s: BaseURL() = %q, want %q", tt.provider, got, tt.wantURL)
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("TUBESUM_DOTENV_PROBE=from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TUBESUM_DOTENV_PROBE", "")
	os.Unsetenv("TUBESUM_DOTENV_PROBE")

	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"), path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("TUBESUM_DOTENV_PROBE"); got != "from-file" {
		t.Errorf("TUBESUM_DOTENV_PROBE = %q, want from-file", got)
	}
}
