package pipeline

import "fmt"

const (
	conciseSystemPrompt = "You are a YouTube summarizer bot. Summarize the provided content into " +
		"a few concise bullet points capturing important ideas."

	detailedSystemPrompt = "You are a YouTube summarizer bot. Summarize the provided content into " +
		"detailed bullet points fully capturing important ideas."

	// AnswerNotFound is what the model replies when a chunk does not answer the question.
	AnswerNotFound = "ANSWER_NOT_FOUND"

	qaSystemPrompt = "You are a YouTube question answer bot. Given a YouTube video transcript chunk " +
		"either return a concise answer to the question, or " + AnswerNotFound + " if the answer " +
		"cannot be found in the provided context."

	// minimum completion room reserved for an answer
	minAnswerTokens = 100
)

func systemPrompt(detailed bool) string {
	if detailed {
		return detailedSystemPrompt
	}
	return conciseSystemPrompt
}

func qaPrompt(chunk, question string) string {
	return fmt.Sprintf("\nVideo transcript chunk:\n%s\n\nQuestion:\n%s\n", chunk, question)
}
