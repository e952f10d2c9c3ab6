package chatpod

// StreamState tells whether a session has an exchange in flight.
type StreamState int

const (
	StateIdle StreamState = iota
	StateStreaming
)

func (s StreamState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStreaming:
		return "streaming"
	default:
		return "unknown"
	}
}
