// Package monitor holds the live dashboard state: one rolling window per
// tracked metric, the GPU-detected latch and the connection status.
//
// Dashboard is not safe for concurrent use. The TUI mutates it only from its
// Update loop, so stream events are applied one at a time in arrival order.
package monitor

import (
	"encoding/json"
	"fmt"

	"github.com/Guliveer/vitalis-live/internal/models"
	"github.com/Guliveer/vitalis-live/internal/window"
)

// RAMDivisor converts ram_usage_mb into the value plotted as "RAM Usage %".
// The result approximates a percentage for an assumed memory size.
const RAMDivisor = 320

// Metric identifies one tracked series.
type Metric int

const (
	CPU Metric = iota
	RAM
	Disk
	NetRx
	NetTx
	GPUUtil
	GPUTemp
	GPUVRAM
	metricCount
)

var metricNames = [...]string{
	CPU:     "cpu",
	RAM:     "ram",
	Disk:    "disk",
	NetRx:   "net_rx",
	NetTx:   "net_tx",
	GPUUtil: "gpu_util",
	GPUTemp: "gpu_temp",
	GPUVRAM: "gpu_vram",
}

func (m Metric) String() string {
	if m < 0 || m >= metricCount {
		return fmt.Sprintf("metric(%d)", int(m))
	}
	return metricNames[m]
}

// Metrics lists every tracked metric in display order.
func Metrics() []Metric {
	out := make([]Metric, 0, metricCount)
	for m := Metric(0); m < metricCount; m++ {
		out = append(out, m)
	}
	return out
}

// Redraw reports which chart groups must be refreshed after a sample.
type Redraw struct {
	// Load and Network are the always-visible charts.
	Load    bool
	Network bool
	// GPU is set only once GPU data has been detected.
	GPU bool
	// GPUDetected is set on the single sample that flipped the latch.
	GPUDetected bool
}

// Dashboard is the in-memory state behind the charts.
type Dashboard struct {
	windows     [metricCount]*window.Window
	gpuDetected bool
	status      Status
	last        models.SystemMetric
	samples     int
}

// New returns a dashboard with zero-filled windows of window.Size samples.
func New() *Dashboard {
	d := &Dashboard{status: StatusConnecting}
	for i := range d.windows {
		d.windows[i] = window.New(window.Size)
	}
	return d
}

// Apply decodes one stream payload and pushes it into the windows.
// A payload that does not decode leaves the dashboard untouched.
func (d *Dashboard) Apply(payload []byte) (Redraw, error) {
	var m models.SystemMetric
	if err := json.Unmarshal(payload, &m); err != nil {
		return Redraw{}, fmt.Errorf("decoding metric event: %w", err)
	}
	return d.Push(m), nil
}

// Push appends one sample to every window, evicting the oldest value of each.
func (d *Dashboard) Push(m models.SystemMetric) Redraw {
	d.windows[CPU].Push(m.CPUUsage)
	d.windows[RAM].Push(m.RAMUsageMB / RAMDivisor)
	d.windows[Disk].Push(m.DiskUsagePercent)
	d.windows[NetRx].Push(m.NetRxKB)
	d.windows[NetTx].Push(m.NetTxKB)
	d.windows[GPUUtil].Push(m.GPUUsage)
	d.windows[GPUTemp].Push(m.GPUTemp)
	d.windows[GPUVRAM].Push(m.GPUVRAMUsedMB)

	d.last = m
	d.samples++

	r := Redraw{Load: true, Network: true}
	if !d.gpuDetected && m.GPUTemp > 0 {
		d.gpuDetected = true
		r.GPUDetected = true
	}
	r.GPU = d.gpuDetected
	return r
}

// Series returns a copy of the window for m, oldest first.
func (d *Dashboard) Series(m Metric) []float64 {
	return d.windows[m].Values()
}

// Latest returns the newest value of m.
func (d *Dashboard) Latest(m Metric) float64 {
	return d.windows[m].Latest()
}

// Peak returns the largest value currently held for m.
func (d *Dashboard) Peak(m Metric) float64 {
	return d.windows[m].Max()
}

// GPUDetected reports whether any sample so far had gpu_temp > 0.
func (d *Dashboard) GPUDetected() bool { return d.gpuDetected }

// Last returns the most recent decoded sample.
func (d *Dashboard) Last() models.SystemMetric { return d.last }

// Samples returns how many samples have been applied.
func (d *Dashboard) Samples() int { return d.samples }
