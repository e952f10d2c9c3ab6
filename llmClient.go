package chatpod

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/ssestream"
	"github.com/openai/openai-go/shared"
)

// Define a custom type for context keys
type ContextKey string

var _ StreamingClient = &OpenAIClient{}

// OpenAIClient streams replies from an OpenAI compatible chat completions API.
type OpenAIClient struct {
	model  string
	client openai.Client
}

func NewOpenAIClient(config LLMConfig, opts ...option.RequestOption) *OpenAIClient {
	base := []option.RequestOption{option.WithAPIKey(config.APIKey)}
	if config.BaseURL != "" {
		base = append(base, option.WithBaseURL(config.BaseURL))
	}
	return &OpenAIClient{
		model:  config.model(),
		client: openai.NewClient(append(base, opts...)...),
	}
}

func optsWithIds(ctx context.Context, opts []option.RequestOption) []option.RequestOption {
	if sessionID, ok := ctx.Value(ContextKey("sessionID")).(string); ok {
		opts = append(opts, option.WithJSONSet("custom_identifier", sessionID))
	}
	return opts
}

func openAIMessages(prior []Message, prompt string) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(prior)+1)
	for _, m := range prior {
		if m.Role == RoleUser {
			messages = append(messages, openai.UserMessage(m.Text))
		} else {
			messages = append(messages, openai.AssistantMessage(m.Text))
		}
	}
	return append(messages, openai.UserMessage(prompt))
}

func (c *OpenAIClient) Open(ctx context.Context, prior []Message, prompt string) (FragmentStream, error) {
	params := openai.ChatCompletionNewParams{
		Messages: openAIMessages(prior, prompt),
		Model:    shared.ChatModel(c.model),
	}
	stream := c.client.Chat.Completions.NewStreaming(ctx, params, optsWithIds(ctx, nil)...)
	if err := stream.Err(); err != nil {
		stream.Close()
		return nil, err
	}
	return &openAIStream{stream: stream}, nil
}

// openAIStream skips chunks that carry no content, such as the role-only
// first chunk and the final usage chunk.
type openAIStream struct {
	stream  *ssestream.Stream[openai.ChatCompletionChunk]
	current string
}

func (s *openAIStream) Next() bool {
	for s.stream.Next() {
		chunk := s.stream.Current()
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}
		s.current = chunk.Choices[0].Delta.Content
		return true
	}
	return false
}

func (s *openAIStream) Current() string {
	return s.current
}

func (s *openAIStream) Err() error {
	return s.stream.Err()
}

func (s *openAIStream) Close() error {
	return s.stream.Close()
}
