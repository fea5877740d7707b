package generator

import "context"

// Generator completes a prompt with a chat model.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
