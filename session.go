// Package chatpod keeps a chat transcript in step with a streaming generation
// backend, one exchange at a time.
package chatpod

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// ApologyText replaces a reply whose stream failed.
const ApologyText = "Oops! Something went wrong. Please try again."

// Session holds the transcript of one conversation and drives at most one
// streaming exchange against it.
type Session struct {
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	id       string
	loader   HistoryLoader
	streamer StreamingClient

	mu       sync.Mutex
	store    *TranscriptStore
	state    StreamState
	closed   bool
	inFlight sync.WaitGroup

	observer func(Event)
	logger   *slog.Logger
}

type SessionOption func(*Session)

// WithObserver registers fn to be told about every transcript change, in
// transition order. The events of one exchange end with EventTypeStreamEnd or
// EventTypeStreamError, delivered while the session still reports
// StateStreaming; it goes idle once fn returns. fn is never called with the
// session lock held, so it may read the session.
func WithObserver(fn func(Event)) SessionOption {
	return func(s *Session) {
		s.observer = fn
	}
}

func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession constructs a session with references to shared collaborators but
// its own transcript. The session lives until Close.
func NewSession(ctx context.Context, sessionID string, loader HistoryLoader, streamer StreamingClient, opts ...SessionOption) *Session {
	ctx, cancel := context.WithCancel(ctx)
	ctx = context.WithValue(ctx, ContextKey("sessionID"), sessionID)
	s := &Session{
		ctx:      ctx,
		cancel:   cancel,
		id:       sessionID,
		loader:   loader,
		streamer: streamer,
		store:    NewTranscriptStore(),
		state:    StateIdle,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) State() StreamState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Transcript()
}

// Load populates the transcript from the history backend. Failures are
// returned untouched; there is no retry.
func (s *Session) Load(ctx context.Context) error {
	history, err := s.loader.Load(ctx, s.id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	err = s.store.Initialize(history)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.emit(Event{Type: EventTypeTranscriptLoaded, Index: len(history)})
	return nil
}

// Submit starts an exchange for text and returns without waiting for the
// reply. Blank text and submissions while a reply is streaming are rejected
// with ErrEmptyMessage and ErrStreaming and change nothing.
func (s *Session) Submit(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.state == StateStreaming {
		s.mu.Unlock()
		return ErrStreaming
	}

	// context for the backend is everything before this exchange
	prior := s.store.Transcript()
	if err := s.store.AppendUser(text); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.store.AppendSystemPlaceholder(); err != nil {
		s.mu.Unlock()
		s.logger.Error("Placeholder rejected after user message", "sessionID", s.id, "error", err)
		return err
	}
	s.state = StateStreaming
	s.inFlight.Add(1)
	s.mu.Unlock()

	s.emit(Event{Type: EventTypeMessageAppended, Index: len(prior), Message: UserMessage(text)})
	s.emit(Event{Type: EventTypeMessageAppended, Index: len(prior) + 1, Message: SystemMessage("")})

	go s.run(prior, text, len(prior)+1)
	return nil
}

// Wait blocks until the exchange in flight, if any, has finished.
func (s *Session) Wait() {
	s.inFlight.Wait()
}

// Close ends the session lifecycle. An exchange still running is cancelled and
// anything it produces afterwards is discarded.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		s.cancel()
	})
}

// run consumes one exchange. Each fragment is committed to the transcript
// before the next one is read.
func (s *Session) run(prior []Message, prompt string, index int) {
	defer s.inFlight.Done()
	s.logger.Info("Exchange started", "sessionID", s.id, "priorMessages", len(prior))

	stream, err := s.streamer.Open(s.ctx, prior, prompt)
	if err != nil {
		s.fail(index, err)
		return
	}
	defer stream.Close()

	var reply strings.Builder
	for stream.Next() {
		reply.WriteString(stream.Current())
		if !s.apply(index, reply.String()) {
			return
		}
	}
	if err := stream.Err(); err != nil {
		s.fail(index, err)
		return
	}

	if s.isClosed() {
		return
	}
	s.logger.Info("Exchange finished", "sessionID", s.id, "replyLength", reply.Len())
	s.emit(Event{Type: EventTypeStreamEnd, Index: index, Message: SystemMessage(reply.String())})
	s.settle()
}

// apply stores the reply so far. It reports false once the session is closed.
func (s *Session) apply(index int, text string) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.logger.Debug("Dropping fragment for closed session", "sessionID", s.id)
		return false
	}
	err := s.store.UpdateLastSystem(text)
	s.mu.Unlock()
	if err != nil {
		s.logger.Error("Reply is no longer the last message", "sessionID", s.id, "error", err)
		return true
	}

	s.emit(Event{Type: EventTypeMessageUpdated, Index: index, Message: SystemMessage(text)})
	return true
}

func (s *Session) fail(index int, cause error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.logger.Debug("Dropping stream failure for closed session", "sessionID", s.id, "error", cause)
		return
	}
	err := s.store.UpdateLastSystem(ApologyText)
	s.mu.Unlock()

	s.logger.Warn("Exchange failed", "sessionID", s.id, "error", cause)
	if err != nil {
		s.logger.Error("Reply is no longer the last message", "sessionID", s.id, "error", err)
	}
	s.emit(Event{Type: EventTypeStreamError, Index: index, Message: SystemMessage(ApologyText), Err: cause})
	s.settle()
}

// settle returns the session to Idle once the exchange's final event has been
// delivered.
func (s *Session) settle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.state = StateIdle
	}
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) emit(ev Event) {
	if s.observer != nil {
		s.observer(ev)
	}
}
