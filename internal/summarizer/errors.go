package summarizer

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrRateLimited   = errors.New("rate limited")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrTransport     = errors.New("transport error")
	ErrEmptyResponse = errors.New("empty response")
)

// classifyStatus wraps err with the error kind implied by an HTTP status code.
func classifyStatus(provider string, status int, err error) error {
	switch {
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%s: %w: %w", provider, ErrRateLimited, err)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%s: %w: %w", provider, ErrUnauthorized, err)
	default:
		return fmt.Errorf("%s: %w: %w", provider, ErrTransport, err)
	}
}

// classifyMessage is used when the SDK only exposes the error text.
func classifyMessage(provider string, err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED"):
		return fmt.Errorf("%s: %w: %w", provider, ErrRateLimited, err)
	case strings.Contains(msg, "401") || strings.Contains(msg, "403") ||
		strings.Contains(msg, "API_KEY_INVALID") || strings.Contains(msg, "PERMISSION_DENIED"):
		return fmt.Errorf("%s: %w: %w", provider, ErrUnauthorized, err)
	default:
		return fmt.Errorf("%s: %w: %w", provider, ErrTransport, err)
	}
}
