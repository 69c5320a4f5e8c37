package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/tubesum/internal/domain"
)

// Request is a single completion call.
type Request struct {
	System      string
	Prompt      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// Response carries the generated text and the token usage reported by the API.
type Response struct {
	Text  string
	Usage domain.Usage
}

// Client sends a prompt to a remote model and returns its completion.
// Failures wrap ErrRateLimited, ErrUnauthorized or ErrTransport.
type Client interface {
	Complete(ctx context.Context, req Request) (Response, error)
}
