package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/tubesum/internal/domain"
)

// Pipeline turns a video reference into a transcript, a summary or an answer.
type Pipeline interface {
	// Summarize fetches, chunks and summarizes the video, then merges the
	// partial summaries in chunk order.
	Summarize(ctx context.Context, ref string) (*domain.Summary, error)
	// Answer asks question against each chunk in order and stops at the first
	// chunk that contains the answer.
	Answer(ctx context.Context, ref, question string) (*domain.Answer, error)
	// Transcript fetches the video transcript.
	Transcript(ctx context.Context, ref string) (*domain.Transcript, error)
}
