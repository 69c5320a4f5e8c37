package summarizer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	ollama "github.com/ollama/ollama/api"

	"github.com/nguyentantai21042004/tubesum/internal/domain"
)

const defaultOllamaHost = "http://localhost:11434"

type ollamaClient struct {
	client *ollama.Client
}

func newOllama(cfg Config) (Client, error) {
	host := cfg.BaseURL
	if host == "" {
		host = defaultOllamaHost
	}

	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("ollama: invalid host %q: %w", host, err)
	}

	hc := *cfg.httpClient()
	base := hc.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	hc.Transport = statusTransport{base: base}

	return &ollamaClient{client: ollama.NewClient(u, &hc)}, nil
}

// The ollama client decodes an error body before it looks at the status
// code, so a non-JSON error body hides the status. statusTransport records
// the status of each response for the request that carries a statusRecorder.
type statusKey struct{}

type statusRecorder struct {
	code atomic.Int32
}

type statusTransport struct {
	base http.RoundTripper
}

func (t statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if rec, ok := req.Context().Value(statusKey{}).(*statusRecorder); ok && resp != nil {
		rec.code.Store(int32(resp.StatusCode))
	}
	return resp, err
}

func (o *ollamaClient) Complete(ctx context.Context, req Request) (Response, error) {
	stream := false
	options := map[string]any{
		"temperature": req.Temperature,
	}
	if req.MaxTokens > 0 {
		options["num_predict"] = req.MaxTokens
	}

	var (
		text  strings.Builder
		usage domain.Usage
	)

	rec := &statusRecorder{}
	ctx = context.WithValue(ctx, statusKey{}, rec)

	err := o.client.Generate(ctx, &ollama.GenerateRequest{
		Model:   req.Model,
		System:  req.System,
		Prompt:  req.Prompt,
		Stream:  &stream,
		Options: options,
	}, func(gr ollama.GenerateResponse) error {
		text.WriteString(gr.Response)
		if gr.Done {
			usage.PromptTokens = gr.PromptEvalCount
			usage.CompletionTokens = gr.EvalCount
		}
		return nil
	})
	if err != nil {
		var statusErr ollama.StatusError
		if errors.As(err, &statusErr) {
			return Response{}, classifyStatus("ollama", statusErr.StatusCode, err)
		}
		if code := int(rec.code.Load()); code >= http.StatusBadRequest {
			return Response{}, classifyStatus("ollama", code, err)
		}
		return Response{}, fmt.Errorf("ollama: %w: %w", ErrTransport, err)
	}

	out := strings.TrimSpace(text.String())
	if out == "" {
		return Response{}, fmt.Errorf("ollama: %w", ErrEmptyResponse)
	}

	return Response{Text: out, Usage: usage}, nil
}
