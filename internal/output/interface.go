package output

import (
	"context"

	"github.com/nguyentantai21042004/tubesum/internal/domain"
)

// Writer renders pipeline results to stdout or to a file.
type Writer interface {
	Summary(ctx context.Context, s *domain.Summary, opts Options) error
	Transcript(ctx context.Context, tr *domain.Transcript, opts Options) error
	Answer(ctx context.Context, a *domain.Answer, opts Options) error
}
