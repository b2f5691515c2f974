// CPU usage collector: overall utilization since the previous collection.
// Uses gopsutil for cross-platform CPU metrics.
package collector

import (
	"context"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/Guliveer/vitalis-live/internal/models"
)

// CPUReading holds the global CPU utilization in percent.
type CPUReading struct {
	Percent float64
}

// Apply implements Reading.
func (r CPUReading) Apply(m *models.SystemMetric) { m.CPUUsage = r.Percent }

// CPUCollector collects CPU usage metrics.
type CPUCollector struct {
	percent func(ctx context.Context) ([]float64, error)
}

// NewCPUCollector creates a new CPU collector.
func NewCPUCollector() *CPUCollector {
	return &CPUCollector{percent: globalPercent}
}

// globalPercent is non-blocking: gopsutil compares against the CPU times of
// its previous call, so the first value is only meaningful after a baseline pause.
func globalPercent(ctx context.Context) ([]float64, error) {
	return cpu.PercentWithContext(ctx, 0, false)
}

// Name returns the collector identifier.
func (c *CPUCollector) Name() string { return "cpu" }

// Collect gathers the overall CPU usage percentage.
func (c *CPUCollector) Collect(ctx context.Context) (Reading, error) {
	overall, err := c.percent(ctx)
	if err != nil {
		return nil, err
	}
	var r CPUReading
	if len(overall) > 0 {
		r.Percent = overall[0]
	}
	return r, nil
}

// IsAvailable returns true: CPU metrics are available on all platforms.
func (c *CPUCollector) IsAvailable() bool { return true }
