package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/tubesum/internal/chunker"
	"github.com/nguyentantai21042004/tubesum/internal/domain"
	"github.com/nguyentantai21042004/tubesum/internal/summarizer"
)

func (p *implPipeline) Answer(ctx context.Context, ref, question string) (*domain.Answer, error) {
	if p.client == nil {
		return nil, ErrNoClient
	}

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, errors.New("question is empty")
	}

	id, text, err := p.transcriptText(ctx, ref)
	if err != nil {
		return nil, err
	}

	answerTokens := max(p.opts.MaxTokens, minAnswerTokens)
	budget := p.opts.MaxContext - p.tok.Count(qaSystemPrompt) - p.tok.Count(qaPrompt("", question)) - answerTokens
	if budget <= 0 {
		return nil, fmt.Errorf("%w: max context %d leaves no room for transcript text next to the question",
			ErrInvalidOptions, p.opts.MaxContext)
	}

	chunks, err := chunker.Chunks(text, budget, p.tok)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	answer := &domain.Answer{VideoID: id, Question: question}
	for _, c := range chunks {
		resp, err := p.client.Complete(ctx, summarizer.Request{
			System:      qaSystemPrompt,
			Prompt:      qaPrompt(c.Text, question),
			Model:       p.opts.Model,
			MaxTokens:   answerTokens,
			Temperature: p.opts.Temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: chunk %d: %w", domain.ErrSummarization, c.Index, err)
		}
		answer.Usage = answer.Usage.Add(resp.Usage)

		if isNotFound(resp.Text) {
			p.logger.Debug(ctx, "pipeline: chunk %d/%d has no answer", c.Index+1, len(chunks))
			continue
		}

		answer.Text = strings.TrimSpace(resp.Text)
		answer.Found = true
		p.logger.Info(ctx, "pipeline: answer for %s found in chunk %d/%d", id, c.Index+1, len(chunks))
		break
	}

	return answer, nil
}

func isNotFound(text string) bool {
	return strings.Trim(strings.TrimSpace(text), ".`\"'") == AnswerNotFound
}
