package ai

import "context"

// Generator is the language-model boundary: one prompt in, one completion
// out. Implementations make a single call with no retries; failures are
// returned as-is for the caller to classify.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
