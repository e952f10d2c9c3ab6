package chatpod

import "strings"

// TranscriptStore holds the ordered messages of one conversation. Messages are
// only ever appended, and only the last one may be rewritten.
//
// A TranscriptStore is not safe for concurrent use; the Session that owns it
// serializes every call.
type TranscriptStore struct {
	messages []Message
	appended bool
}

func NewTranscriptStore() *TranscriptStore {
	return &TranscriptStore{
		messages: []Message{},
	}
}

func (ts *TranscriptStore) Len() int {
	return len(ts.messages)
}

// Initialize replaces the content with persisted history. It is only accepted
// before the first append.
func (ts *TranscriptStore) Initialize(history []Message) error {
	if ts.appended {
		return ErrTranscriptInitialized
	}
	ts.messages = append(make([]Message, 0, len(history)), history...)
	return nil
}

func (ts *TranscriptStore) AppendUser(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}
	ts.messages = append(ts.messages, UserMessage(text))
	ts.appended = true
	return nil
}

// AppendSystemPlaceholder reserves the slot for the reply to the user message
// that was just appended.
func (ts *TranscriptStore) AppendSystemPlaceholder() error {
	last, ok := ts.last()
	if !ok || last.Role != RoleUser {
		return ErrPlaceholderOrder
	}
	ts.messages = append(ts.messages, SystemMessage(""))
	return nil
}

// UpdateLastSystem replaces the text of the last message. The transcript is
// left untouched when that message is not a system message.
func (ts *TranscriptStore) UpdateLastSystem(text string) error {
	last, ok := ts.last()
	if !ok || last.Role != RoleSystem {
		return ErrLastNotSystem
	}
	ts.messages[len(ts.messages)-1].Text = text
	return nil
}

// Transcript returns a copy of the messages in conversation order.
func (ts *TranscriptStore) Transcript() []Message {
	return append([]Message{}, ts.messages...)
}

func (ts *TranscriptStore) last() (Message, bool) {
	if len(ts.messages) == 0 {
		return Message{}, false
	}
	return ts.messages[len(ts.messages)-1], true
}
