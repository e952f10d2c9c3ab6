package chatpod

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestTranscriptStore(t *testing.T) {
	t.Run("Initialize", func(t *testing.T) {
		ts := NewTranscriptStore()
		require.NoError(t, ts.Initialize([]Message{UserMessage("hi"), SystemMessage("hello")}))
		require.Equal(t, 2, ts.Len())

		// replacing is fine as long as nothing was appended yet
		require.NoError(t, ts.Initialize([]Message{UserMessage("again")}))
		require.Equal(t, []Message{UserMessage("again")}, ts.Transcript())

		require.NoError(t, ts.AppendUser("next"))
		err := ts.Initialize(nil)
		require.True(t, errors.Is(err, ErrTranscriptInitialized))
		require.Equal(t, 2, ts.Len())
	})

	t.Run("AppendUserRejectsBlank", func(t *testing.T) {
		ts := NewTranscriptStore()
		for _, text := range []string{"", "   ", "\n\t"} {
			require.ErrorIs(t, ts.AppendUser(text), ErrEmptyMessage)
		}
		require.Equal(t, 0, ts.Len())
	})

	t.Run("PlaceholderFollowsUser", func(t *testing.T) {
		ts := NewTranscriptStore()
		require.ErrorIs(t, ts.AppendSystemPlaceholder(), ErrPlaceholderOrder)

		require.NoError(t, ts.AppendUser("question"))
		require.NoError(t, ts.AppendSystemPlaceholder())
		require.ErrorIs(t, ts.AppendSystemPlaceholder(), ErrPlaceholderOrder)
		require.Equal(t, []Message{UserMessage("question"), SystemMessage("")}, ts.Transcript())
	})

	t.Run("UpdateLastSystem", func(t *testing.T) {
		ts := NewTranscriptStore()
		require.ErrorIs(t, ts.UpdateLastSystem("x"), ErrLastNotSystem)

		require.NoError(t, ts.AppendUser("question"))
		require.ErrorIs(t, ts.UpdateLastSystem("x"), ErrLastNotSystem)
		require.Equal(t, "question", ts.Transcript()[0].Text)

		require.NoError(t, ts.AppendSystemPlaceholder())
		require.NoError(t, ts.UpdateLastSystem("Hel"))
		require.NoError(t, ts.UpdateLastSystem("Hello"))
		require.Equal(t, SystemMessage("Hello"), ts.Transcript()[1])
	})

	t.Run("TranscriptIsACopy", func(t *testing.T) {
		ts := NewTranscriptStore()
		require.NoError(t, ts.AppendUser("mine"))
		snapshot := ts.Transcript()
		snapshot[0].Text = "changed"
		require.Equal(t, "mine", ts.Transcript()[0].Text)
	})
}
