package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"

	"github.com/nguyentantai21042004/tubesum/internal/domain"
)

const anthropicDefaultMaxTokens = 1024

type anthropicClient struct {
	client *anthropic.Client
}

func newAnthropic(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("anthropic: ANTHROPIC_API_KEY is required")
	}

	opts := []anthropicopt.RequestOption{
		anthropicopt.WithAPIKey(cfg.APIKey),
		anthropicopt.WithHTTPClient(cfg.httpClient()),
		// failures surface to the caller as-is
		anthropicopt.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, anthropicopt.WithBaseURL(cfg.BaseURL))
	}

	cl := anthropic.NewClient(opts...)
	return &anthropicClient{client: &cl}, nil
}

func (a *anthropicClient) Complete(ctx context.Context, req Request) (Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicDefaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
		Temperature: anthropic.Float(req.Temperature),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return Response{}, classifyStatus("anthropic", apiErr.StatusCode, err)
		}
		return Response{}, fmt.Errorf("anthropic: %w: %w", ErrTransport, err)
	}

	var b strings.Builder
	for _, cb := range msg.Content {
		if tb, ok := cb.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(tb.Text)
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return Response{}, fmt.Errorf("anthropic: %w (stop reason = %s)", ErrEmptyResponse, msg.StopReason)
	}

	return Response{
		Text: text,
		Usage: domain.Usage{
			PromptTokens:     int(msg.Usage.InputTokens),
			CompletionTokens: int(msg.Usage.OutputTokens),
		},
	}, nil
}
