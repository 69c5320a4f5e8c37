package transcript

import (
	"context"

	"github.com/nguyentantai21042004/tubesum/internal/domain"
)

// Source returns the timed caption segments of a video.
// Errors wrap domain.ErrTranscriptUnavailable when the video has no usable
// captions and domain.ErrTranscriptFetch when the service could not be read.
type Source interface {
	Fetch(ctx context.Context, videoID string) (*domain.Transcript, error)
}
