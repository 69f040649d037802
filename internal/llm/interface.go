// Package llm wraps the hosted text models used for summaries and answers.
package llm

import "context"

// Request is one deterministic, single-candidate completion.
type Request struct {
	System    string
	Prompt    string
	MaxTokens int
}

// Generator produces text for a Request.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
