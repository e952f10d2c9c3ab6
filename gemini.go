package chatpod

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

var _ StreamingClient = &GeminiClient{}

// GeminiClient streams replies from Google's Gemini models. Every exchange
// starts a fresh chat session seeded with the prior transcript.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, config LLMConfig) (*GeminiClient, error) {
	opts := []option.ClientOption{option.WithAPIKey(config.APIKey)}
	if config.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(config.BaseURL))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create gemini client")
	}
	return &GeminiClient{
		client: client,
		model:  config.model(),
	}, nil
}

// geminiHistory converts a transcript to chat history. Gemini only knows the
// "user" and "model" roles, rejects empty parts and requires the history to
// open with a user turn, so blank messages and leading replies are left out.
func geminiHistory(prior []Message) []*genai.Content {
	history := make([]*genai.Content, 0, len(prior))
	for _, m := range prior {
		if m.Text == "" {
			continue
		}
		role := "model"
		if m.Role == RoleUser {
			role = "user"
		}
		if len(history) == 0 && role == "model" {
			continue
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Text)},
		})
	}
	return history
}

func (c *GeminiClient) Open(ctx context.Context, prior []Message, prompt string) (FragmentStream, error) {
	cs := c.client.GenerativeModel(c.model).StartChat()
	cs.History = geminiHistory(prior)
	return &geminiStream{iter: cs.SendMessageStream(ctx, genai.Text(prompt))}, nil
}

// Close releases the underlying connection.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

type responseIterator interface {
	Next() (*genai.GenerateContentResponse, error)
}

type geminiStream struct {
	iter    responseIterator
	current string
	err     error
	done    bool
}

func (s *geminiStream) Next() bool {
	for !s.done {
		resp, err := s.iter.Next()
		if err == iterator.Done {
			s.done = true
			return false
		}
		if err != nil {
			s.err = err
			s.done = true
			return false
		}
		if text := responseText(resp); text != "" {
			s.current = text
			return true
		}
	}
	return false
}

func (s *geminiStream) Current() string {
	return s.current
}

func (s *geminiStream) Err() error {
	return s.err
}

func (s *geminiStream) Close() error {
	s.done = true
	return nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	// only the first candidate is part of the reply
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		var b strings.Builder
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
		return b.String()
	}
	return ""
}
