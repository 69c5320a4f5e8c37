package tokenizer

// Tokenizer measures text in model tokens.
type Tokenizer interface {
	Count(text string) int
}
