package processor

import (
	"github.com/nguyentantai21042004/tubesum/internal/config"
	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/internal/output"
	"github.com/nguyentantai21042004/tubesum/internal/pipeline"
	"github.com/nguyentantai21042004/tubesum/pkg/semaphore"
)

type implProcessor struct {
	cfg      *config.Config
	format   output.Format
	pipeline pipeline.Pipeline
	writer   output.Writer
	logger   logger.Logger
	sem      *semaphore.Semaphore
}

// New creates a new Processor instance. At most cfg.Watch.MaxConcurrent
// videos are summarized at once across all list files.
func New(cfg *config.Config, pipe pipeline.Pipeline, writer output.Writer, log logger.Logger) (Processor, error) {
	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	maxConcurrent := cfg.Watch.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}

	return &implProcessor{
		cfg:      cfg,
		format:   format,
		pipeline: pipe,
		writer:   writer,
		logger:   log,
		sem:      semaphore.New(maxConcurrent),
	}, nil
}
