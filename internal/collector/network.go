// Network I/O collector: kilobytes received and sent since the previous collection.
// Uses gopsutil for cross-platform network metrics.
package collector

import (
	"context"

	"github.com/shirou/gopsutil/v3/net"

	"github.com/Guliveer/vitalis-live/internal/models"
)

const bytesPerKB = 1024

// NetworkReading holds the traffic delta in KB.
type NetworkReading struct {
	RxKB float64
	TxKB float64
}

// Apply implements Reading.
func (r NetworkReading) Apply(m *models.SystemMetric) {
	m.NetRxKB = r.RxKB
	m.NetTxKB = r.TxKB
}

// NetworkCollector collects network I/O metrics summed over all interfaces.
// It tracks previous readings to compute deltas between collections.
type NetworkCollector struct {
	counters    func(ctx context.Context) (rx, tx uint64, err error)
	lastRx      uint64
	lastTx      uint64
	initialized bool
}

// NewNetworkCollector creates a new network collector.
func NewNetworkCollector() *NetworkCollector {
	return &NetworkCollector{counters: totalCounters}
}

func totalCounters(ctx context.Context) (uint64, uint64, error) {
	counters, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return 0, 0, err
	}
	if len(counters) == 0 {
		return 0, 0, nil
	}
	return counters[0].BytesRecv, counters[0].BytesSent, nil
}

// Name returns the collector identifier.
func (c *NetworkCollector) Name() string { return "network" }

// Collect returns the RX/TX delta since the last collection.
// The first collection returns zero deltas while establishing a baseline,
// and a counter that went backwards (reset or wrap) yields zero.
func (c *NetworkCollector) Collect(ctx context.Context) (Reading, error) {
	totalRx, totalTx, err := c.counters(ctx)
	if err != nil {
		return nil, err
	}

	var r NetworkReading
	if c.initialized {
		r.RxKB = deltaKB(totalRx, c.lastRx)
		r.TxKB = deltaKB(totalTx, c.lastTx)
	}

	c.lastRx = totalRx
	c.lastTx = totalTx
	c.initialized = true

	return r, nil
}

func deltaKB(now, prev uint64) float64 {
	if now < prev {
		return 0
	}
	return float64(now-prev) / bytesPerKB
}

// IsAvailable returns true: network metrics are available on all platforms.
func (c *NetworkCollector) IsAvailable() bool { return true }
