package chatpod

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/iterator"
)

type fakeResponseIterator struct {
	responses []*genai.GenerateContentResponse
	err       error
}

func (f *fakeResponseIterator) Next() (*genai.GenerateContentResponse, error) {
	if len(f.responses) == 0 {
		if f.err != nil {
			return nil, f.err
		}
		return nil, iterator.Done
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(text)}},
		}},
	}
}

func TestGeminiHistory(t *testing.T) {
	history := geminiHistory([]Message{
		UserMessage("hi"),
		SystemMessage("hello"),
		UserMessage("again"),
		SystemMessage(""),
	})

	require.Len(t, history, 3)
	require.Equal(t, "user", history[0].Role)
	require.Equal(t, "model", history[1].Role)
	require.Equal(t, []genai.Part{genai.Text("again")}, history[2].Parts)

	t.Run("OpensWithUserTurn", func(t *testing.T) {
		history := geminiHistory([]Message{
			SystemMessage("Welcome back!"),
			SystemMessage(""),
			UserMessage("hi"),
			SystemMessage("hello"),
		})

		require.Len(t, history, 2)
		require.Equal(t, "user", history[0].Role)
		require.Equal(t, []genai.Part{genai.Text("hi")}, history[0].Parts)
		require.Equal(t, "model", history[1].Role)
	})

	t.Run("OnlyRepliesIsEmpty", func(t *testing.T) {
		require.Empty(t, geminiHistory([]Message{SystemMessage("Welcome back!")}))
	})
}

func TestGeminiStream(t *testing.T) {
	t.Run("YieldsTextInOrder", func(t *testing.T) {
		stream := &geminiStream{iter: &fakeResponseIterator{responses: []*genai.GenerateContentResponse{
			textResponse("I'm "),
			{Candidates: []*genai.Candidate{{}}},
			textResponse("fine."),
		}}}

		var got []string
		for stream.Next() {
			got = append(got, stream.Current())
		}
		require.NoError(t, stream.Err())
		require.Equal(t, []string{"I'm ", "fine."}, got)
		require.False(t, stream.Next())
	})

	t.Run("ReportsFailure", func(t *testing.T) {
		stream := &geminiStream{iter: &fakeResponseIterator{
			responses: []*genai.GenerateContentResponse{textResponse("Par")},
			err:       errors.New("connection reset"),
		}}

		require.True(t, stream.Next())
		require.Equal(t, "Par", stream.Current())
		require.False(t, stream.Next())
		require.EqualError(t, stream.Err(), "connection reset")
	})

	t.Run("CloseStopsIteration", func(t *testing.T) {
		stream := &geminiStream{iter: &fakeResponseIterator{responses: []*genai.GenerateContentResponse{textResponse("x")}}}
		require.NoError(t, stream.Close())
		require.False(t, stream.Next())
	})
}

func TestGeminiClientLive(t *testing.T) {
	_ = godotenv.Load()
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping test because GEMINI_API_KEY is not set")
	}

	ctx := context.Background()
	client, err := NewGeminiClient(ctx, LLMConfig{Provider: ProviderGemini, APIKey: apiKey})
	require.NoError(t, err)
	defer client.Close()

	stream, err := client.Open(ctx, []Message{UserMessage("Remember the word 'pineapple'."), SystemMessage("Okay.")},
		"This is a test script. Respond with just the word I asked you to remember.")
	require.NoError(t, err)
	defer stream.Close()

	var reply strings.Builder
	for stream.Next() {
		reply.WriteString(stream.Current())
	}
	require.NoError(t, stream.Err())
	require.Contains(t, strings.ToLower(reply.String()), "pineapple")
}
