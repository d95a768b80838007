package llm

import "context"

// Summarizer produces a summary for a fully rendered prompt.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
	Close() error
}
