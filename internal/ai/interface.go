package ai

import (
	"context"
)

// Extractor maps a user utterance plus conversation context to an intent, slots and an
// optional direct reply. Implementations wrap a specific LLM provider.
type Extractor interface {
	Extract(ctx context.Context, utterance string, c Context) (*Extraction, error)

	// Name identifies the provider in logs and health output.
	Name() string
}
