package chatpod

import (
	"context"

	"github.com/pkg/errors"
)

// NewStreamingClient builds the generation backend named by config.Provider.
// An empty provider means Gemini.
func NewStreamingClient(ctx context.Context, config LLMConfig) (StreamingClient, error) {
	switch config.Provider {
	case ProviderGemini, "":
		return NewGeminiClient(ctx, config)
	case ProviderOpenAI:
		return NewOpenAIClient(config), nil
	default:
		return nil, errors.Wrapf(ErrUnknownProvider, "%q", config.Provider)
	}
}
