package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Guliveer/vitalis-live/internal/config"
	"github.com/Guliveer/vitalis-live/internal/models"
)

type countingSampler struct {
	mu    sync.Mutex
	calls int
	first time.Time
}

func (c *countingSampler) Sample(_ context.Context, hostID string, now time.Time) models.SystemMetric {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.first.IsZero() {
		c.first = now
	}
	return models.SystemMetric{HostID: hostID, CPUUsage: float64(c.calls), Timestamp: now.Unix()}
}

func agentConfig(interval, baseline time.Duration) config.AgentConfig {
	return config.AgentConfig{
		Interval: config.Duration{Duration: interval},
		Baseline: config.Duration{Duration: baseline},
	}
}

func TestScheduler_EmitsSamplesAfterBaseline(t *testing.T) {
	sampler := &countingSampler{}
	s := New(sampler, "node-1", agentConfig(10*time.Millisecond, 30*time.Millisecond), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var got []models.SystemMetric
	s.OnSample(func(m models.SystemMetric) {
		got = append(got, m)
		if len(got) == 3 {
			cancel()
		}
	})

	start := time.Now()
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}

	if len(got) != 3 {
		t.Fatalf("got %d samples, want 3", len(got))
	}
	for i, m := range got {
		if m.HostID != "node-1" {
			t.Errorf("sample %d host = %q", i, m.HostID)
		}
		if m.CPUUsage != float64(i+1) {
			t.Errorf("sample %d out of order: %v", i, m.CPUUsage)
		}
	}
	if wait := sampler.first.Sub(start); wait < 30*time.Millisecond {
		t.Errorf("first sample after %v, want at least the 30ms baseline", wait)
	}
}

func TestScheduler_CancelDuringBaseline(t *testing.T) {
	sampler := &countingSampler{}
	s := New(sampler, "node-1", agentConfig(time.Millisecond, time.Hour), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Start(ctx)

	if sampler.calls != 0 {
		t.Errorf("sampled %d times during baseline", sampler.calls)
	}
}
