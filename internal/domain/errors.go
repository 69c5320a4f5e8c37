package domain

import "errors"

var (
	ErrInvalidVideoReference = errors.New("invalid video reference")
	ErrTranscriptUnavailable = errors.New("transcript unavailable")
	ErrTranscriptFetch       = errors.New("transcript fetch error")
	ErrSummarization         = errors.New("summarization error")
)

// Kind names the error kind of err, or "error" when it is none of the known kinds.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidVideoReference):
		return "InvalidVideoReference"
	case errors.Is(err, ErrTranscriptUnavailable):
		return "TranscriptUnavailable"
	case errors.Is(err, ErrTranscriptFetch):
		return "TranscriptFetchError"
	case errors.Is(err, ErrSummarization):
		return "SummarizationError"
	default:
		return "error"
	}
}

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrInvalidVideoReference):
		return 2
	case errors.Is(err, ErrTranscriptUnavailable):
		return 3
	case errors.Is(err, ErrTranscriptFetch):
		return 4
	case errors.Is(err, ErrSummarization):
		return 5
	default:
		return 1
	}
}
