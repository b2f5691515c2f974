// Package gpu reads NVIDIA GPU metrics through NVML.
package gpu

import "errors"

// ErrUnavailable is returned when no NVML driver or device can be used.
var ErrUnavailable = errors.New("NVML not available")

// Metrics is a snapshot of one GPU.
type Metrics struct {
	Index int
	Name  string
	// Utilization is the core load in percent.
	Utilization uint32
	// Temperature is the core temperature in °C.
	Temperature uint32
	// MemoryUsedMB and MemoryTotMB are in MiB, fractions kept.
	MemoryUsedMB float64
	MemoryTotMB  float64
}

// bytesToMB converts a byte count to MiB.
func bytesToMB(b uint64) float64 {
	return float64(b) / (1024 * 1024)
}

// Provider abstracts GPU metrics collection for testing.
type Provider interface {
	// Init initializes the provider (NVML or mock).
	Init() error
	// Shutdown releases the provider.
	Shutdown() error
	// DeviceCount returns the number of GPUs.
	DeviceCount() (int, error)
	// Device returns current metrics for the GPU at index.
	Device(index int) (Metrics, error)
}
