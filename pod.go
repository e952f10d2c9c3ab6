package chatpod

import (
	"context"
	"log/slog"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/pkg/errors"
)

// Pod holds the collaborators shared by every session: where history comes
// from and which backend generates replies.
type Pod struct {
	Loader   HistoryLoader
	Streamer StreamingClient
	logger   *slog.Logger
}

// NewPod constructs a new Pod with the given resources.
func NewPod(loader HistoryLoader, streamer StreamingClient) *Pod {
	return &Pod{
		Loader:   loader,
		Streamer: streamer,
		logger:   slog.Default(),
	}
}

// NewPodFromConfig wires the HTTP history loader and the configured
// generation backend.
func NewPodFromConfig(ctx context.Context, cfg Config) (*Pod, error) {
	loader, err := NewHTTPHistoryLoader(cfg.APIURL, WithCookies(cfg.Cookies))
	if err != nil {
		return nil, err
	}
	streamer, err := NewStreamingClient(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}
	return NewPod(loader, streamer), nil
}

func (p *Pod) SetLogger(logger *slog.Logger) {
	p.logger = logger
}

// NewSession enters a conversation. With an empty sessionID a new
// conversation is started under a generated ID and nothing is fetched;
// otherwise the persisted history is loaded first and a load failure is
// returned instead of a session.
func (p *Pod) NewSession(ctx context.Context, sessionID string, opts ...SessionOption) (*Session, error) {
	opts = append([]SessionOption{WithLogger(p.logger)}, opts...)
	if sessionID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return nil, errors.Wrap(err, "failed to generate session id")
		}
		p.logger.Info("Session started", "sessionID", id, "new", true)
		return NewSession(ctx, id, p.Loader, p.Streamer, opts...), nil
	}

	sess := NewSession(ctx, sessionID, p.Loader, p.Streamer, opts...)
	if err := sess.Load(ctx); err != nil {
		sess.Close()
		return nil, err
	}
	p.logger.Info("Session started", "sessionID", sessionID, "messages", len(sess.Transcript()))
	return sess, nil
}

// Close releases backend connections held by the pod.
func (p *Pod) Close() error {
	if c, ok := p.Streamer.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
