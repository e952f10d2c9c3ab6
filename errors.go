// Package chatpod - errors.go
// Defines session and transcript errors.

package chatpod

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrEmptyMessage          = errors.New("message is empty")
	ErrStreaming             = errors.New("an exchange is already streaming")
	ErrSessionClosed         = errors.New("session has been closed")
	ErrTranscriptInitialized = errors.New("transcript already has appended messages")
	ErrPlaceholderOrder      = errors.New("placeholder must follow a user message")
	ErrLastNotSystem         = errors.New("last message is not a system message")
	ErrHistoryNotFound       = errors.New("chat history not found")
	ErrUnknownProvider       = errors.New("unknown llm provider")
)

// HistoryFetchError is returned when prior messages could not be loaded for a
// session, either because the request failed or the body could not be parsed.
type HistoryFetchError struct {
	SessionID  string
	StatusCode int
	Err        error
}

func (e *HistoryFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch history for %s: HTTP %d: %v", e.SessionID, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch history for %s: %v", e.SessionID, e.Err)
}

func (e *HistoryFetchError) Unwrap() error {
	return e.Err
}
