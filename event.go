package chatpod

type EventType string

const (
	EventTypeTranscriptLoaded EventType = "transcript-loaded"
	EventTypeMessageAppended  EventType = "message-appended"
	EventTypeMessageUpdated   EventType = "message-updated"
	EventTypeStreamEnd        EventType = "stream-end"
	EventTypeStreamError      EventType = "stream-error"
)

// Event tells an observer how the transcript changed. Index is the position of
// Message in the transcript, except for EventTypeTranscriptLoaded where it is
// the number of messages loaded. For EventTypeStreamError, Err holds the cause
// and Message the apology that replaced the partial reply.
type Event struct {
	Type    EventType
	Index   int
	Message Message
	Err     error
}
