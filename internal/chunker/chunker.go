package chunker

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/nguyentantai21042004/tubesum/internal/domain"
	"github.com/nguyentantai21042004/tubesum/internal/tokenizer"
)

var ErrInvalidBudget = errors.New("chunk budget must be positive")

// Split packs text into chunks of at most maxTokens tokens as measured by tok.
//
// Sentences are packed greedily. A sentence over the budget is split on
// whitespace and its words are packed the same way; a single word over the
// budget becomes its own oversized chunk rather than being cut. Whitespace is
// normalized to single spaces, so joining the chunks with " " reproduces the
// normalized input.
func Split(text string, maxTokens int, tok tokenizer.Tokenizer) ([]string, error) {
	if maxTokens <= 0 {
		return nil, ErrInvalidBudget
	}

	p := &packer{max: maxTokens, tok: tok}
	for _, sentence := range sentences(text) {
		if tok.Count(sentence) <= maxTokens {
			p.add(sentence)
			continue
		}
		for _, word := range strings.Fields(sentence) {
			p.add(word)
		}
	}

	return p.finish(), nil
}

// Chunks is Split with chunk indexes attached.
func Chunks(text string, maxTokens int, tok tokenizer.Tokenizer) ([]domain.Chunk, error) {
	parts, err := Split(text, maxTokens, tok)
	if err != nil {
		return nil, err
	}

	chunks := make([]domain.Chunk, len(parts))
	for i, part := range parts {
		chunks[i] = domain.Chunk{Index: i, Text: part}
	}
	return chunks, nil
}

type packer struct {
	max    int
	tok    tokenizer.Tokenizer
	cur    string
	chunks []string
}

func (p *packer) add(unit string) {
	if p.cur == "" {
		p.cur = unit
		return
	}

	candidate := p.cur + " " + unit
	if p.tok.Count(candidate) > p.max {
		p.chunks = append(p.chunks, p.cur)
		p.cur = unit
		return
	}
	p.cur = candidate
}

func (p *packer) finish() []string {
	if p.cur != "" {
		p.chunks = append(p.chunks, p.cur)
		p.cur = ""
	}
	return p.chunks
}

// sentences groups the words of text into sentences. A word ends a sentence
// when its last letter, ignoring closing quotes and brackets, is a terminator.
func sentences(text string) []string {
	var (
		out  []string
		curr []string
	)

	for _, word := range strings.Fields(text) {
		curr = append(curr, word)
		if endsSentence(word) {
			out = append(out, strings.Join(curr, " "))
			curr = curr[:0]
		}
	}
	if len(curr) > 0 {
		out = append(out, strings.Join(curr, " "))
	}
	return out
}

func endsSentence(word string) bool {
	word = strings.TrimRight(word, `"')]}»”’`)
	r, _ := utf8.DecodeLastRuneInString(word)
	switch r {
	case '.', '!', '?', '…', '。', '！', '？':
		return true
	}
	return false
}
