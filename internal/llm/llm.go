// Package llm holds the clients for the generative analysis service.
package llm

import "context"

// Request is one single-turn completion.
type Request struct {
	System    string
	Prompt    string
	MaxTokens int
}

type Completion struct {
	Text         string
	InputTokens  int
	OutputTokens int
}

// Client is implemented by every backend.
type Client interface {
	Model() string
	Complete(ctx context.Context, req Request) (*Completion, error)
}
