package watcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/pkg/semaphore"
)

// DefaultExtensions are the list-file types picked up in watch mode.
var DefaultExtensions = []string{".txt", ".url", ".list"}

const defaultSettle = 500 * time.Millisecond

// Options configures a Watcher. Zero values fall back to defaults.
type Options struct {
	Extensions    []string
	MaxConcurrent int
	// Settle is how long to wait after a file appears before handling it,
	// so that writers can finish.
	Settle time.Duration
}

// New creates a new Watcher instance with concurrency control
func New(inputDir string, handler EventHandler, log logger.Logger, opts Options) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inputDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	extSet := make(map[string]bool, len(exts))
	for _, ext := range exts {
		extSet[strings.ToLower(ext)] = true
	}

	settle := opts.Settle
	if settle <= 0 {
		settle = defaultSettle
	}

	return &implWatcher{
		inputDir:   inputDir,
		handler:    handler,
		logger:     log,
		watcher:    watcher,
		extensions: extSet,
		settle:     settle,
		sem:        semaphore.New(opts.MaxConcurrent),
		inFlight:   make(map[string]bool),
	}, nil
}
