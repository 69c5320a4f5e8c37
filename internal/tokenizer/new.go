package tokenizer

import "strings"

// ForProvider picks the tokenizer matching a model provider. Only OpenAI
// encodings are available offline; every other provider is estimated.
func ForProvider(provider, model string) Tokenizer {
	if strings.EqualFold(provider, "openai") {
		if tok, err := NewTiktoken(model); err == nil {
			return tok
		}
	}
	return Estimate{}
}
