package demo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPlayerAdvanceWraps(t *testing.T) {
	p := NewPlayer([]Step{{Text: "a"}, {Text: "b"}})

	require.Equal(t, "a", p.Current().Text)
	require.Equal(t, "b", p.Advance().Text)
	require.Equal(t, 0, p.Loops())
	require.Equal(t, "a", p.Advance().Text)
	require.Equal(t, 1, p.Loops())
}

func TestNewPlayerDefaultsToLandingScript(t *testing.T) {
	p := NewPlayer(nil)
	require.Equal(t, DefaultScript[0], p.Current())

	speakers := []string{}
	for range DefaultScript {
		speakers = append(speakers, p.Current().Speaker)
		p.Advance()
	}
	require.Equal(t, []string{"human1", "bot", "human2", "bot"}, speakers)
}

func TestPlayerRunRepeatsUntilCancelled(t *testing.T) {
	p := NewPlayer([]Step{
		{Text: "one", Delay: time.Millisecond},
		{Text: "two", Delay: time.Millisecond},
	})

	ctx, cancel := context.WithCancel(context.Background())
	var shown []string
	err := p.Run(ctx, func(s Step) {
		shown = append(shown, s.Text)
		if len(shown) == 5 {
			cancel()
		}
	})

	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, []string{"one", "two", "one", "two", "one"}, shown)
	require.Equal(t, 2, p.Loops())
}

func TestNewPlayerEnforcesMinDelay(t *testing.T) {
	p := NewPlayer([]Step{{Text: "instant"}, {Text: "slow", Delay: time.Second}})

	require.Equal(t, MinDelay, p.Current().Delay)
	require.Equal(t, time.Second, p.Advance().Delay)
}
