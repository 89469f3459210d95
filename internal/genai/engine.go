package genai

import "context"

// Progress reports model load/download advancement.
type Progress struct {
	Percent int
	Message string
}

// Options tunes a single completion request.
type Options struct {
	MaxTokens    int
	Temperature  float64
	TopP         float64
	SystemPrompt string

	// Purpose tags the call for observability only.
	Purpose string
}

// Engine is the raw generative backend: slow to load, stateful, and
// entirely hidden behind the Adapter.
type Engine interface {
	// Load downloads and initializes the given model variant,
	// reporting coarse progress through the callback.
	Load(ctx context.Context, model string, progress func(Progress)) error

	// Complete runs one prompt through the loaded model.
	Complete(ctx context.Context, model, prompt string, opts Options) (string, error)

	// Unload releases the loaded model's memory.
	Unload(ctx context.Context) error
}
