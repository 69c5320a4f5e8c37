package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nguyentantai21042004/tubesum/internal/logger"
)

type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatDocx     Format = "docx"
)

// ParseFormat accepts a format name or a common file extension for it.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "docx":
		return FormatDocx, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, markdown, json or docx)", s)
	}
}

// Ext is the file extension used for f.
func (f Format) Ext() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatJSON:
		return ".json"
	case FormatDocx:
		return ".docx"
	default:
		return ".txt"
	}
}

// Options controls a single write. An empty Path writes to stdout.
type Options struct {
	Format     Format
	Path       string
	Timestamps bool // transcripts only
}

type implWriter struct {
	stdout io.Writer
	logger logger.Logger
	now    func() time.Time
}

// New creates a Writer that prints to stdout when no path is given.
func New(stdout io.Writer, log logger.Logger) Writer {
	return &implWriter{
		stdout: stdout,
		logger: log,
		now:    time.Now,
	}
}
