package chatpod

import "context"

// StreamingClient opens one exchange with a generation backend. The prior
// transcript gives the backend its conversation context and prompt is the new
// user text.
type StreamingClient interface {
	Open(ctx context.Context, prior []Message, prompt string) (FragmentStream, error)
}

// FragmentStream yields the reply as text fragments in generation order. It is
// consumed once: call Next until it returns false, then check Err. A non-nil
// Err means the reply was cut short and the fragments seen so far are void.
type FragmentStream interface {
	Next() bool
	Current() string
	Err() error
	Close() error
}
