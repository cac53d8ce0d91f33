package model

import "context"

// Provider is the interface the agent loop consumes: send the
// conversation, get a response or a failure. Retry/backoff behaviour
// belongs to the implementation; a returned error means the provider is
// unavailable after its own retries.
type Provider interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
}
