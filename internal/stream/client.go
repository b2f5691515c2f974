// Package stream consumes a server-sent event stream the way a browser
// EventSource does: one persistent GET, automatic reconnection after a fixed
// delay, Last-Event-ID resumption and a server-controlled retry interval.
package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// DefaultRetry is the reconnection delay used until the server sends a retry field.
const DefaultRetry = 3 * time.Second

// ErrFatal is returned by Run when the server answers with something other
// than a 200 text/event-stream response. The connection is not retried.
var ErrFatal = errors.New("event stream failed")

// errStreamEnded reports a clean end of the response body.
var errStreamEnded = errors.New("event stream ended")

// Client maintains one event-stream subscription.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
	retry      time.Duration

	lastEventID string

	onOpen    func()
	onError   func(error)
	onMessage func(Event)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. The client must not set a
// Timeout, since the response body stays open indefinitely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRetry sets the initial reconnection delay.
func WithRetry(d time.Duration) Option {
	return func(c *Client) { c.retry = d }
}

// New creates a client for the stream at url.
func New(url string, opts ...Option) *Client {
	c := &Client{
		url:        url,
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
		retry:      DefaultRetry,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("stream")
	return c
}

// OnOpen sets the callback invoked each time a connection is established.
func (c *Client) OnOpen(fn func()) { c.onOpen = fn }

// OnError sets the callback invoked when a connection fails or drops.
func (c *Client) OnError(fn func(error)) { c.onError = fn }

// OnMessage sets the callback invoked for every dispatched event.
func (c *Client) OnMessage(fn func(Event)) { c.onMessage = fn }

// Run connects and keeps reconnecting until ctx is cancelled or the server
// fails the stream. Callbacks run on the calling goroutine.
func (c *Client) Run(ctx context.Context) error {
	delay := backoff.NewConstantBackOff(c.retry)
	b := backoff.WithContext(delay, ctx)

	operation := func() error {
		err := c.connect(ctx, delay)
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		return err
	}

	notify := func(err error, next time.Duration) {
		c.logger.Warn("Event stream lost, reconnecting",
			zap.String("url", c.url),
			zap.Duration("retry_in", next),
			zap.Error(err))
		c.emitError(err)
	}

	err := backoff.RetryNotify(operation, b, notify)
	if errors.Is(err, ErrFatal) {
		c.logger.Error("Event stream failed", zap.String("url", c.url), zap.Error(err))
		c.emitError(err)
	}
	return err
}

// connect performs one connection attempt and reads events until the body
// ends. It never returns nil.
func (c *Client) connect(ctx context.Context, delay *backoff.ConstantBackOff) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("%w: create request: %v", ErrFatal, err))
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if c.lastEventID != "" {
		req.Header.Set("Last-Event-ID", c.lastEventID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return backoff.Permanent(fmt.Errorf("%w: server returned %d", ErrFatal, resp.StatusCode))
	}
	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || mediaType != "text/event-stream" {
		return backoff.Permanent(fmt.Errorf("%w: unexpected content type %q", ErrFatal, resp.Header.Get("Content-Type")))
	}

	c.logger.Info("Event stream connected", zap.String("url", c.url))
	if c.onOpen != nil {
		c.onOpen()
	}

	dec := NewDecoder(resp.Body)
	dec.lastID = c.lastEventID
	for {
		ev, err := dec.Next()
		if d, ok := dec.Retry(); ok {
			delay.Interval = d
		}
		c.lastEventID = dec.LastEventID()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return errStreamEnded
			}
			return fmt.Errorf("read: %w", err)
		}
		if c.onMessage != nil {
			c.onMessage(ev)
		}
	}
}

func (c *Client) emitError(err error) {
	if c.onError != nil {
		c.onError(err)
	}
}
