package domain

import (
	"strings"
	"time"
)

// Segment is one timed caption unit returned by a transcript source.
type Segment struct {
	Text     string
	Start    time.Duration
	Duration time.Duration
}

// Transcript is the ordered list of caption segments for a video.
type Transcript struct {
	VideoID  string
	Language string
	Segments []Segment
}

// Text joins the segment texts with single spaces, skipping blank segments.
func (t *Transcript) Text() string {
	if t == nil {
		return ""
	}

	var sb strings.Builder
	for _, seg := range t.Segments {
		text := strings.Join(strings.Fields(seg.Text), " ")
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
	}
	return sb.String()
}

type Chunk struct {
	Index int
	Text  string
}

// Usage counts tokens reported by the model API.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

// Add returns the element-wise sum of u and o.
func (u Usage) Add(o Usage) Usage {
	return Usage{
		PromptTokens:     u.PromptTokens + o.PromptTokens,
		CompletionTokens: u.CompletionTokens + o.CompletionTokens,
	}
}

type PartialSummary struct {
	ChunkIndex int
	Text       string
	Usage      Usage
}

// Summary is the merged result for one video.
type Summary struct {
	VideoID string
	Text    string
	// Partials is the number of chunks that were summarized.
	Partials int
	// Merged reports whether an extra pass condensed the partial summaries.
	Merged bool
	Usage  Usage
}

// Answer is the result of asking a question about a video.
type Answer struct {
	VideoID  string
	Question string
	Text     string
	Found    bool
	Usage    Usage
}
