// Package sender implements the HTTP sample sender with retry logic.
// It marshals each sample to JSON and POSTs it to the ingestion endpoint,
// retrying with exponential backoff. Samples that still fail are dropped.
package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/Guliveer/vitalis-live/internal/config"
	"github.com/Guliveer/vitalis-live/internal/models"
)

const (
	// IngestPath is the backend endpoint that accepts samples.
	IngestPath = "/ingest"

	// requestTimeout is the HTTP request timeout for each send attempt.
	requestTimeout = 5 * time.Second
)

// ErrRejected is returned when the server refuses a sample with a 4xx status.
// Rejected samples are not retried.
var ErrRejected = errors.New("sample rejected")

// Sender posts samples to the backend.
type Sender struct {
	client *http.Client
	url    string
	retry  config.RetryConfig
	logger *zap.Logger

	sent    int
	dropped int
}

// New creates a Sender for the server configured in cfg.
func New(cfg *config.Config, logger *zap.Logger) *Sender {
	return &Sender{
		client: &http.Client{Timeout: requestTimeout},
		url:    cfg.Endpoint(IngestPath),
		retry:  cfg.Agent.Retry,
		logger: logger,
	}
}

// Send delivers one sample, retrying transient failures. On final failure the
// sample is logged and dropped, and the last error is returned.
func (s *Sender) Send(ctx context.Context, m models.SystemMetric) error {
	data, err := json.Marshal(m)
	if err != nil {
		s.logger.Error("Failed to marshal sample", zap.Error(err))
		return err
	}

	operation := func() error {
		return s.doSend(ctx, data)
	}
	notify := func(err error, next time.Duration) {
		s.logger.Warn("Send failed, retrying",
			zap.Duration("retry_in", next),
			zap.Error(err))
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(s.newBackOff(), ctx), notify); err != nil {
		s.dropped++
		s.logger.Error("Failed to send metric, dropping sample",
			zap.String("host_id", m.HostID),
			zap.Int64("timestamp", m.Timestamp),
			zap.Int("dropped_total", s.dropped),
			zap.Error(err))
		return err
	}

	s.sent++
	s.logger.Info(fmt.Sprintf("Sent: CPU %.1f%% | RAM %.0fMB | Disk %.1f%% | GPU %.1f%% | VRAM %.0fMB",
		m.CPUUsage, m.RAMUsageMB, m.DiskUsagePercent, m.GPUUsage, m.GPUVRAMUsedMB))
	return nil
}

// Stats returns the number of samples delivered and dropped so far.
func (s *Sender) Stats() (sent, dropped int) {
	return s.sent, s.dropped
}

func (s *Sender) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.retry.InitialInterval.Duration
	b.MaxInterval = s.retry.MaxInterval.Duration
	b.MaxElapsedTime = s.retry.MaxElapsed.Duration
	b.Reset()
	return b
}

// doSend performs a single HTTP POST to the ingest endpoint.
func (s *Sender) doSend(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return backoff.Permanent(fmt.Errorf("%w: server returned %d", ErrRejected, resp.StatusCode))
	default:
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}
}
