package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/tubesum/internal/domain"
	"github.com/nguyentantai21042004/tubesum/internal/summarizer"
)

const testQuestion = "What comes fourth?"

// qaContextFor returns the MaxContext that leaves budget tokens per question chunk.
func qaContextFor(budget int) int {
	wc := wordCounter{}
	return budget + wc.Count(qaSystemPrompt) + wc.Count(qaPrompt("", testQuestion)) + minAnswerTokens
}

func TestAnswerStopsAtFirstHit(t *testing.T) {
	client := &fakeClient{respond: func(req summarizer.Request) (summarizer.Response, error) {
		text := AnswerNotFound
		if strings.Contains(req.Prompt, "Delta") {
			text = " Delta is fourth. "
		}
		return summarizer.Response{Text: text, Usage: domain.Usage{PromptTokens: 10, CompletionTokens: 2}}, nil
	}}
	p := newTestPipeline(t, newSource(sixSentences...), client, Options{MaxContext: qaContextFor(4)})

	answer, err := p.Answer(context.Background(), testVideoID, testQuestion)
	require.NoError(t, err)

	assert.True(t, answer.Found)
	assert.Equal(t, "Delta is fourth.", answer.Text)
	assert.Equal(t, testVideoID, answer.VideoID)
	assert.Equal(t, testQuestion, answer.Question)
	assert.Equal(t, domain.Usage{PromptTokens: 20, CompletionTokens: 4}, answer.Usage)

	require.Equal(t, 2, client.calls())
	first := client.requests[0]
	assert.Equal(t, qaSystemPrompt, first.System)
	assert.Equal(t, minAnswerTokens, first.MaxTokens)
	assert.Contains(t, first.Prompt, "Video transcript chunk:\nAlpha one. Bravo two.")
	assert.Contains(t, first.Prompt, "Question:\n"+testQuestion)
}

func TestAnswerNotFound(t *testing.T) {
	replies := []string{AnswerNotFound, AnswerNotFound + ".", "`" + AnswerNotFound + "`"}
	var i int
	client := &fakeClient{respond: func(summarizer.Request) (summarizer.Response, error) {
		text := replies[i%len(replies)]
		i++
		return summarizer.Response{Text: text}, nil
	}}
	p := newTestPipeline(t, newSource(sixSentences...), client, Options{MaxContext: qaContextFor(4)})

	answer, err := p.Answer(context.Background(), testVideoID, testQuestion)
	require.NoError(t, err)
	assert.False(t, answer.Found)
	assert.Empty(t, answer.Text)
	assert.Equal(t, 3, client.calls())
}

func TestAnswerErrors(t *testing.T) {
	t.Run("empty question", func(t *testing.T) {
		src := newSource(sixSentences...)
		p := newTestPipeline(t, src, &fakeClient{}, Options{MaxContext: qaContextFor(4)})

		_, err := p.Answer(context.Background(), testVideoID, "   ")
		assert.Error(t, err)
		assert.Zero(t, src.calls)
	})

	t.Run("no room for the question", func(t *testing.T) {
		client := &fakeClient{}
		p := newTestPipeline(t, newSource(sixSentences...), client, Options{MaxContext: qaContextFor(0)})

		_, err := p.Answer(context.Background(), testVideoID, testQuestion)
		assert.ErrorIs(t, err, ErrInvalidOptions)
		assert.Zero(t, client.calls())
	})

	t.Run("client failure", func(t *testing.T) {
		client := &fakeClient{respond: func(summarizer.Request) (summarizer.Response, error) {
			return summarizer.Response{}, summarizer.ErrUnauthorized
		}}
		p := newTestPipeline(t, newSource(sixSentences...), client, Options{MaxContext: qaContextFor(4)})

		_, err := p.Answer(context.Background(), testVideoID, testQuestion)
		assert.ErrorIs(t, err, domain.ErrSummarization)
		assert.ErrorIs(t, err, summarizer.ErrUnauthorized)
	})
}
