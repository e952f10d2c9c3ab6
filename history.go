package chatpod

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const endpointChatHistory = "/api/chats/%s"

// HistoryLoader fetches the persisted messages of a conversation.
type HistoryLoader interface {
	Load(ctx context.Context, sessionID string) ([]Message, error)
}

var _ HistoryLoader = &HTTPHistoryLoader{}

// HTTPHistoryLoader reads history from the chat backend. The caller's session
// cookies are attached to every request; the loader never obtains or refreshes
// them itself.
type HTTPHistoryLoader struct {
	client  *client.Client
	baseURL string
	cookies map[string]string
	logger  *slog.Logger
}

type HistoryLoaderOption func(*HTTPHistoryLoader)

// WithCookies sets the credential cookies sent along with history requests.
func WithCookies(cookies map[string]string) HistoryLoaderOption {
	return func(l *HTTPHistoryLoader) {
		for k, v := range cookies {
			l.cookies[k] = v
		}
	}
}

func WithHistoryLogger(logger *slog.Logger) HistoryLoaderOption {
	return func(l *HTTPHistoryLoader) {
		l.logger = logger
	}
}

func NewHTTPHistoryLoader(baseURL string, opts ...HistoryLoaderOption) (*HTTPHistoryLoader, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("invalid history base URL %q", baseURL)
	}

	c, err := client.NewClient(
		client.WithDialTimeout(10*time.Second),
		client.WithMaxIdleConnDuration(60*time.Second),
		client.WithDialer(standard.NewDialer()),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create HTTP client")
	}

	l := &HTTPHistoryLoader{
		client:  c,
		baseURL: strings.TrimRight(u.String(), "/"),
		cookies: map[string]string{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

type historyResponse struct {
	History []struct {
		Role string `json:"role"`
		Text string `json:"text"`
	} `json:"history"`
}

// Load performs a single GET for the session's history. There is no retry;
// a missing history field is an empty conversation, not an error.
func (l *HTTPHistoryLoader) Load(ctx context.Context, sessionID string) ([]Message, error) {
	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	requestID := uuid.New().String()
	req.SetMethod(consts.MethodGet)
	req.SetRequestURI(l.baseURL + fmt.Sprintf(endpointChatHistory, url.PathEscape(sessionID)))
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	for name, value := range l.cookies {
		req.Header.SetCookie(name, value)
	}

	if err := l.client.Do(ctx, req, resp); err != nil {
		return nil, &HistoryFetchError{SessionID: sessionID, Err: errors.Wrap(err, "request failed")}
	}

	status := resp.StatusCode()
	if status == consts.StatusNotFound {
		return nil, errors.Wrapf(ErrHistoryNotFound, "session %s", sessionID)
	}
	if status < 200 || status >= 300 {
		return nil, &HistoryFetchError{
			SessionID:  sessionID,
			StatusCode: status,
			Err:        errors.Errorf("unexpected status, body: %s", string(resp.Body())),
		}
	}

	var body historyResponse
	if err := sonic.Unmarshal(resp.Body(), &body); err != nil {
		return nil, &HistoryFetchError{SessionID: sessionID, StatusCode: status, Err: errors.Wrap(err, "failed to unmarshal history")}
	}

	messages := make([]Message, 0, len(body.History))
	for _, m := range body.History {
		messages = append(messages, Message{Role: normalizeRole(m.Role), Text: m.Text})
	}
	l.logger.Debug("History loaded", "sessionID", sessionID, "requestID", requestID, "messages", len(messages))
	return messages, nil
}
