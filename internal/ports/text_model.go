package ports

import "context"

// TextModel is the narrow contract with the hosted text-generation
// service. Responses are untrusted until validated by the caller.
type TextModel interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
