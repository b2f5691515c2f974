package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/Guliveer/vitalis-live/internal/models"
)

// Client posts questions to the backend's chat endpoint.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the chat endpoint at url. The HTTP client
// carries no timeout; a question waits as long as the backend takes.
func NewClient(url string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{},
		logger:     logger.Named("chat"),
	}
}

// Ask sends question and returns the response body as text. Any HTTP status
// is an answer; only transport and read failures are errors.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	body, err := json.Marshal(models.ChatRequest{Question: question})
	if err != nil {
		return "", fmt.Errorf("marshaling question: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Chat request failed", zap.String("url", c.url), zap.Error(err))
		return "", fmt.Errorf("sending question: %w", err)
	}
	defer resp.Body.Close()

	answer, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("Chat response unreadable", zap.Int("status", resp.StatusCode), zap.Error(err))
		return "", fmt.Errorf("reading answer: %w", err)
	}

	c.logger.Debug("Chat answered",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(answer)))
	return string(answer), nil
}
