// Package llm provides the completion-service gateway.
package llm

import "context"

// CompletionClient is the contract the orchestrator depends on: one
// synchronous completion call. Retry and backoff, if wanted, belong to an
// outer policy layer, not here.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error)
}

// Ensure both implementations satisfy the interface.
var (
	_ CompletionClient = (*Client)(nil)
	_ CompletionClient = (*MockClient)(nil)
)
