// RAM usage collector: used memory in megabytes.
// Uses gopsutil for cross-platform memory metrics.
package collector

import (
	"context"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/Guliveer/vitalis-live/internal/models"
)

const bytesPerMB = 1024 * 1024

// MemoryReading holds used RAM in MB.
type MemoryReading struct {
	UsedMB float64
}

// Apply implements Reading.
func (r MemoryReading) Apply(m *models.SystemMetric) { m.RAMUsageMB = r.UsedMB }

// MemoryCollector collects RAM usage metrics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Name returns the collector identifier.
func (c *MemoryCollector) Name() string { return "memory" }

// Collect gathers used memory.
func (c *MemoryCollector) Collect(ctx context.Context) (Reading, error) {
	v, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}
	return MemoryReading{UsedMB: float64(v.Used) / bytesPerMB}, nil
}

// IsAvailable returns true: memory metrics are available on all platforms.
func (c *MemoryCollector) IsAvailable() bool { return true }
