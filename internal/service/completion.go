package service

import "context"

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

type CompletionMessage struct {
	Role    string
	Content string
}

// CompletionRequest is the provider-neutral shape of one completion
// call. Model may be empty, in which case the provider uses its
// configured default.
type CompletionRequest struct {
	Model        string
	Messages     []CompletionMessage
	Temperature  float32
	JSONResponse bool
	MaxTokens    int
}

// CompletionService is the single seam between the engines and the
// remote language model. Implementations must return the completion as
// plain text; callers own all parsing and fallback policy.
type CompletionService interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// EmbeddingService produces a vector for arbitrary text. Used for the
// job/CV candidate-ranking feature.
type EmbeddingService interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
