package pipeline

import (
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/internal/summarizer"
	"github.com/nguyentantai21042004/tubesum/internal/tokenizer"
	"github.com/nguyentantai21042004/tubesum/internal/transcript"
)

// Mode selects how chunk summaries are scheduled.
type Mode string

const (
	ModeSequential Mode = "sequential"
	ModeConcurrent Mode = "concurrent"
)

var (
	ErrInvalidOptions = errors.New("invalid pipeline options")
	ErrNoClient       = errors.New("no summarizer client configured")
)

// Options is fixed for the lifetime of a Pipeline.
type Options struct {
	Model       string
	MaxContext  int // model context window, in tokens
	MaxTokens   int // completion tokens requested per call
	Temperature float64

	// Detailed selects the detailed prompt and disables the merge pass.
	Detailed bool
	Mode     Mode
	// MaxConcurrent bounds in-flight calls in concurrent mode; 0 means unbounded.
	MaxConcurrent int
	// MergeThreshold is the token size above which condensed summaries of
	// several chunks get one more summarization pass.
	MergeThreshold int
}

type implPipeline struct {
	source transcript.Source
	client summarizer.Client
	tok    tokenizer.Tokenizer
	opts   Options
	logger logger.Logger

	budget int
}

// New creates a Pipeline. It fails when the options leave no room for
// transcript text in a request. client may be nil for a pipeline that only
// fetches transcripts.
func New(source transcript.Source, client summarizer.Client, tok tokenizer.Tokenizer, opts Options, log logger.Logger) (Pipeline, error) {
	if opts.Mode == "" {
		opts.Mode = ModeSequential
	}
	if opts.Mode != ModeSequential && opts.Mode != ModeConcurrent {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidOptions, opts.Mode)
	}
	if opts.MaxContext <= 0 {
		return nil, fmt.Errorf("%w: max context must be positive, got %d", ErrInvalidOptions, opts.MaxContext)
	}
	if opts.MaxTokens < 0 || opts.MaxConcurrent < 0 {
		return nil, fmt.Errorf("%w: max tokens and max concurrent must not be negative", ErrInvalidOptions)
	}

	budget := opts.MaxContext - tok.Count(systemPrompt(opts.Detailed)) - opts.MaxTokens
	if budget <= 0 {
		return nil, fmt.Errorf("%w: max context %d leaves no room for transcript text after the prompt and %d response tokens",
			ErrInvalidOptions, opts.MaxContext, opts.MaxTokens)
	}

	return &implPipeline{
		source: source,
		client: client,
		tok:    tok,
		opts:   opts,
		logger: log,
		budget: budget,
	}, nil
}
