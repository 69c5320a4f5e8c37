package tokenizer

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

const fallbackEncoding = "cl100k_base"

var loaderOnce sync.Once

type implTiktoken struct {
	enc *tiktoken.Tiktoken
}

// NewTiktoken returns an exact tokenizer for an OpenAI model name. Unknown
// models use the cl100k_base encoding. BPE ranks are embedded, so no network
// access is needed.
func NewTiktoken(model string) (Tokenizer, error) {
	loaderOnce.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})

	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return nil, fmt.Errorf("load encoding %s: %w", fallbackEncoding, err)
		}
	}

	return &implTiktoken{enc: enc}, nil
}

func (t *implTiktoken) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(t.enc.Encode(text, nil, nil))
}
