package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/tubesum/internal/chunker"
	"github.com/nguyentantai21042004/tubesum/internal/domain"
	"github.com/nguyentantai21042004/tubesum/internal/summarizer"
	"github.com/nguyentantai21042004/tubesum/internal/video"
)

// Transcript resolves ref and fetches its transcript.
func (p *implPipeline) Transcript(ctx context.Context, ref string) (*domain.Transcript, error) {
	id, err := video.Parse(ref)
	if err != nil {
		return nil, err
	}

	tr, err := p.source.Fetch(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTranscriptUnavailable) || errors.Is(err, domain.ErrTranscriptFetch) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrTranscriptFetch, err)
	}
	if tr == nil || len(tr.Segments) == 0 {
		return nil, fmt.Errorf("%w: no segments for video %s", domain.ErrTranscriptUnavailable, id)
	}

	p.logger.Debug(ctx, "pipeline: fetched %d segments for %s (lang=%s)", len(tr.Segments), id, tr.Language)
	return tr, nil
}

// transcriptText fetches the transcript and returns its joined text.
func (p *implPipeline) transcriptText(ctx context.Context, ref string) (string, string, error) {
	tr, err := p.Transcript(ctx, ref)
	if err != nil {
		return "", "", err
	}

	text := tr.Text()
	if text == "" {
		return "", "", fmt.Errorf("%w: transcript of %s is empty", domain.ErrTranscriptUnavailable, tr.VideoID)
	}
	return tr.VideoID, text, nil
}

func (p *implPipeline) Summarize(ctx context.Context, ref string) (*domain.Summary, error) {
	if p.client == nil {
		return nil, ErrNoClient
	}

	id, text, err := p.transcriptText(ctx, ref)
	if err != nil {
		return nil, err
	}

	chunks, err := chunker.Chunks(text, p.budget, p.tok)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	system := systemPrompt(p.opts.Detailed)
	p.logger.Info(ctx, "pipeline: summarizing %s in %d chunk(s) (%s, budget=%d tokens)", id, len(chunks), p.opts.Mode, p.budget)

	var partials []domain.PartialSummary
	if p.opts.Mode == ModeConcurrent {
		partials, err = p.summarizeConcurrent(ctx, chunks, system)
	} else {
		partials, err = p.summarizeSequential(ctx, chunks, system)
	}
	if err != nil {
		return nil, err
	}

	return p.merge(ctx, id, partials)
}

func (p *implPipeline) summarizeSequential(ctx context.Context, chunks []domain.Chunk, system string) ([]domain.PartialSummary, error) {
	partials := make([]domain.PartialSummary, 0, len(chunks))
	for _, c := range chunks {
		ps, err := p.summarizeChunk(ctx, c, system)
		if err != nil {
			return nil, err
		}
		partials = append(partials, ps)
	}
	return partials, nil
}

// summarizeConcurrent issues every chunk call at once (bounded by
// MaxConcurrent) and waits for all of them, including after a failure.
// Each goroutine writes only its own slot.
func (p *implPipeline) summarizeConcurrent(ctx context.Context, chunks []domain.Chunk, system string) ([]domain.PartialSummary, error) {
	partials := make([]domain.PartialSummary, len(chunks))

	var g errgroup.Group
	if p.opts.MaxConcurrent > 0 {
		g.SetLimit(p.opts.MaxConcurrent)
	}

	for i, c := range chunks {
		g.Go(func() error {
			ps, err := p.summarizeChunk(ctx, c, system)
			if err != nil {
				return err
			}
			partials[i] = ps
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return partials, nil
}

func (p *implPipeline) summarizeChunk(ctx context.Context, c domain.Chunk, system string) (domain.PartialSummary, error) {
	resp, err := p.complete(ctx, system, c.Text)
	if err != nil {
		p.logger.Error(ctx, "pipeline: chunk %d failed: %v", c.Index, err)
		return domain.PartialSummary{}, fmt.Errorf("%w: chunk %d: %w", domain.ErrSummarization, c.Index, err)
	}

	p.logger.Debug(ctx, "pipeline: chunk %d summarized (%d prompt / %d completion tokens)",
		c.Index, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	return domain.PartialSummary{
		ChunkIndex: c.Index,
		Text:       resp.Text,
		Usage:      resp.Usage,
	}, nil
}

// merge joins partials in chunk order. Condensed summaries of several chunks
// that exceed MergeThreshold get one more pass over the joined text.
func (p *implPipeline) merge(ctx context.Context, id string, partials []domain.PartialSummary) (*domain.Summary, error) {
	texts := make([]string, len(partials))
	var usage domain.Usage
	for i, ps := range partials {
		texts[i] = ps.Text
		usage = usage.Add(ps.Usage)
	}

	summary := &domain.Summary{
		VideoID:  id,
		Text:     strings.Join(texts, "\n"),
		Partials: len(partials),
		Usage:    usage,
	}

	if p.opts.Detailed || len(partials) < 2 {
		return summary, nil
	}

	size := p.tok.Count(summary.Text)
	if size <= p.opts.MergeThreshold {
		return summary, nil
	}
	if size > p.budget {
		p.logger.Warn(ctx, "pipeline: skipping merge pass for %s: %d tokens of partial summaries exceed the %d token budget",
			id, size, p.budget)
		return summary, nil
	}

	p.logger.Info(ctx, "pipeline: merging %d partial summaries of %s (%d tokens)", len(partials), id, size)
	resp, err := p.complete(ctx, systemPrompt(false), summary.Text)
	if err != nil {
		return nil, fmt.Errorf("%w: merge: %w", domain.ErrSummarization, err)
	}

	summary.Text = resp.Text
	summary.Merged = true
	summary.Usage = summary.Usage.Add(resp.Usage)
	return summary, nil
}

func (p *implPipeline) complete(ctx context.Context, system, prompt string) (summarizer.Response, error) {
	return p.client.Complete(ctx, summarizer.Request{
		System:      system,
		Prompt:      prompt,
		Model:       p.opts.Model,
		MaxTokens:   p.opts.MaxTokens,
		Temperature: p.opts.Temperature,
	})
}
