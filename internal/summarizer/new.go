package summarizer

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderOllama    = "ollama"
)

// Config selects and configures a model provider.
type Config struct {
	Provider          string
	APIKey            string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerMinute int
	HTTPClient        *http.Client
}

func (c Config) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: c.Timeout}
}

// New creates the Client for cfg.Provider.
func New(ctx context.Context, cfg Config) (Client, error) {
	var (
		client Client
		err    error
	)

	switch strings.ToLower(cfg.Provider) {
	case ProviderOpenAI, "":
		client, err = newOpenAI(cfg)
	case ProviderAnthropic:
		client, err = newAnthropic(cfg)
	case ProviderGemini:
		client, err = newGemini(ctx, cfg)
	case ProviderOllama:
		client, err = newOllama(cfg)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return WithRateLimit(client, cfg.RequestsPerMinute), nil
}
