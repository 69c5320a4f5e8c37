package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIComplete(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "  a short summary \n"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 42, "completion_tokens": 7, "total_tokens": 49}
		}`)
	}))
	defer srv.Close()

	client, err := New(context.Background(), Config{Provider: "openai", APIKey: "sk-test", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	resp, err := client.Complete(context.Background(), Request{
		System:    "be brief",
		Prompt:    "transcript text",
		Model:     "gpt-4o-mini",
		MaxTokens: 64,
	})
	require.NoError(t, err)

	assert.Equal(t, "a short summary", resp.Text)
	assert.Equal(t, 42, resp.Usage.PromptTokens)
	assert.Equal(t, 7, resp.Usage.CompletionTokens)

	assert.Equal(t, "gpt-4o-mini", got["model"])
	messages, ok := got["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "transcript text", messages[1].(map[string]any)["content"])
}

func TestOpenAIErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, want: ErrRateLimited},
		{name: "bad key", status: http.StatusUnauthorized, want: ErrUnauthorized},
		{name: "server error", status: http.StatusInternalServerError, want: ErrTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, `{"error": {"message": "nope", "type": "test_error"}}`)
			}))
			defer srv.Close()

			client, err := newOpenAI(Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1"})
			require.NoError(t, err)

			_, err = client.Complete(context.Background(), Request{Prompt: "x", Model: "m"})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOpenAIEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"choices": [{"index": 0, "message": {"role": "assistant", "content": "   "}, "finish_reason": "length"}]}`)
	}))
	defer srv.Close()

	client, err := newOpenAI(Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), Request{Prompt: "x", Model: "m"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestOllamaComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3", req["model"])
		assert.Equal(t, "sys", req["system"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"model":"llama3","response":"local summary","done":true,"prompt_eval_count":11,"eval_count":3}`+"\n")
	}))
	defer srv.Close()

	client, err := New(context.Background(), Config{Provider: "ollama", BaseURL: srv.URL})
	require.NoError(t, err)

	resp, err := client.Complete(context.Background(), Request{System: "sys", Prompt: "p", Model: "llama3"})
	require.NoError(t, err)
	assert.Equal(t, "local summary", resp.Text)
	assert.Equal(t, 11, resp.Usage.PromptTokens)
	assert.Equal(t, 3, resp.Usage.CompletionTokens)
}

func TestOllamaStatusError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "plain text 429", status: http.StatusTooManyRequests, body: "server busy\n", want: ErrRateLimited},
		{name: "json 429", status: http.StatusTooManyRequests, body: `{"error":"busy"}`, want: ErrRateLimited},
		{name: "plain text 401", status: http.StatusUnauthorized, body: "unauthorized\n", want: ErrUnauthorized},
		{name: "json 500", status: http.StatusInternalServerError, body: `{"error":"model crashed"}`, want: ErrTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			client, err := newOllama(Config{BaseURL: srv.URL})
			require.NoError(t, err)

			_, err = client.Complete(context.Background(), Request{Prompt: "p", Model: "llama3"})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOllamaKeepsCallerHTTPClient(t *testing.T) {
	hc := &http.Client{}
	_, err := newOllama(Config{HTTPClient: hc})
	require.NoError(t, err)
	assert.Nil(t, hc.Transport)
}

func TestNewRequiresKeys(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "openai without key", cfg: Config{Provider: "openai"}, wantErr: true},
		{name: "openai with key", cfg: Config{Provider: "openai", APIKey: "k"}},
		{name: "anthropic without key", cfg: Config{Provider: "anthropic"}, wantErr: true},
		{name: "anthropic with key", cfg: Config{Provider: "anthropic", APIKey: "k"}},
		{name: "gemini without key", cfg: Config{Provider: "gemini"}, wantErr: true},
		{name: "ollama needs no key", cfg: Config{Provider: "ollama"}},
		{name: "unknown provider", cfg: Config{Provider: "bard"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(context.Background(), tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestClassifyMessage(t *testing.T) {
	tests := []struct {
		msg  string
		want error
	}{
		{msg: "Error 429, Message: Resource has been exhausted", want: ErrRateLimited},
		{msg: "RESOURCE_EXHAUSTED", want: ErrRateLimited},
		{msg: "you exceeded your current quota", want: ErrRateLimited},
		{msg: "Error 400: API_KEY_INVALID", want: ErrUnauthorized},
		{msg: "Error 403, PERMISSION_DENIED", want: ErrUnauthorized},
		{msg: "dial tcp: connection refused", want: ErrTransport},
	}

	for _, tt := range tests {
		err := classifyMessage("gemini", errors.New(tt.msg))
		assert.ErrorIs(t, err, tt.want, tt.msg)
	}
}

type countingClient struct {
	calls atomic.Int32
}

func (c *countingClient) Complete(ctx context.Context, req Request) (Response, error) {
	c.calls.Add(1)
	return Response{Text: req.Prompt}, nil
}

func TestWithRateLimit(t *testing.T) {
	inner := &countingClient{}
	assert.Same(t, Client(inner), WithRateLimit(inner, 0))

	// 60/min is one request per second with a burst of one: the first call
	// passes, the second has to wait past the deadline.
	limited := WithRateLimit(inner, 60)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := limited.Complete(ctx, Request{Prompt: "first"})
	require.NoError(t, err)

	_, err = limited.Complete(ctx, Request{Prompt: "second"})
	require.Error(t, err)
	assert.Equal(t, int32(1), inner.calls.Load())
}
