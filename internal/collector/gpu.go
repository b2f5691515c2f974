// GPU collector: utilization, temperature and VRAM of the first GPU.
// Reads NVML through gpu.Provider and falls back to gopsutil host sensors
// for the temperature when no NVML device answers.
package collector

import (
	"context"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
	"go.uber.org/zap"

	"github.com/Guliveer/vitalis-live/internal/gpu"
	"github.com/Guliveer/vitalis-live/internal/models"
)

// Sensor name substrings used to identify GPU temperature sensors across platforms.
// Linux:  amdgpu_edge_input, nouveau_temp1_input
// macOS:  TG0P (GPU proximity), TG0D (GPU die)
// Windows: GPU, nvidia, radeon, etc.
var gpuSensorKeys = []string{
	"gpu", "nvidia", "amd", "radeon",
	"tg0p", "tg0d",
	"amdgpu", "nouveau",
}

// minValidTemp is the minimum temperature (°C) considered valid.
const minValidTemp = 0.0

// maxValidTemp is the maximum temperature (°C) considered valid.
// Readings above this are likely sensor errors.
const maxValidTemp = 150.0

// GPUReading holds the metrics of the first GPU. All zero means no GPU.
type GPUReading struct {
	Utilization float64
	Temperature float64
	VRAMUsedMB  float64
}

// Apply implements Reading.
func (r GPUReading) Apply(m *models.SystemMetric) {
	m.GPUUsage = r.Utilization
	m.GPUTemp = r.Temperature
	m.GPUVRAMUsedMB = r.VRAMUsedMB
}

// GPUCollector collects metrics of GPU 0.
type GPUCollector struct {
	provider gpu.Provider
	// initialized is true after a successful Init; ready additionally
	// requires at least one device.
	initialized bool
	ready       bool
	sensors     func(ctx context.Context) ([]host.TemperatureStat, error)
	logger      *zap.Logger
}

// NewGPUCollector creates a GPU collector. The provider is initialized here;
// when that fails the collector reports zeros plus any sensor temperature.
func NewGPUCollector(p gpu.Provider, logger *zap.Logger) *GPUCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &GPUCollector{
		provider: p,
		sensors:  host.SensorsTemperaturesWithContext,
		logger:   logger,
	}
	if p != nil {
		if err := p.Init(); err != nil {
			logger.Warn("No NVIDIA GPU driver found, GPU stats will be 0", zap.Error(err))
		} else {
			c.initialized = true
			c.ready = c.describeDevices()
		}
	}
	return c
}

// describeDevices logs the GPUs NVML reports and whether device 0 is usable.
func (c *GPUCollector) describeDevices() bool {
	count, err := c.provider.DeviceCount()
	if err != nil {
		c.logger.Warn("NVIDIA GPU driver detected but device count failed", zap.Error(err))
		return false
	}
	if count == 0 {
		c.logger.Warn("NVIDIA GPU driver detected but no devices found, GPU stats will be 0")
		return false
	}

	m, err := c.provider.Device(0)
	if err != nil {
		c.logger.Warn("NVIDIA GPU driver detected but GPU 0 not readable",
			zap.Int("devices", count), zap.Error(err))
		return true
	}
	c.logger.Info("NVIDIA GPU driver detected",
		zap.Int("devices", count),
		zap.String("name", m.Name),
		zap.Float64("vram_total_mb", m.MemoryTotMB))
	return true
}

// Name returns the collector identifier.
func (c *GPUCollector) Name() string { return "gpu" }

// Collect reads device 0. Missing devices and failed sensor reads are not
// errors; they leave the corresponding values at zero.
func (c *GPUCollector) Collect(ctx context.Context) (Reading, error) {
	var r GPUReading

	if c.ready {
		m, err := c.provider.Device(0)
		if err != nil {
			c.logger.Debug("GPU 0 not readable", zap.Error(err))
		} else {
			r.Utilization = float64(m.Utilization)
			r.Temperature = float64(m.Temperature)
			r.VRAMUsedMB = m.MemoryUsedMB
		}
	}

	if r.Temperature == 0 {
		if t, ok := c.sensorTemperature(ctx); ok {
			r.Temperature = t
		}
	}
	return r, nil
}

// Close shuts the provider down.
func (c *GPUCollector) Close() error {
	if !c.initialized {
		return nil
	}
	c.initialized = false
	c.ready = false
	return c.provider.Shutdown()
}

// IsAvailable returns true: always registered; reports zeros without a GPU.
func (c *GPUCollector) IsAvailable() bool { return true }

// sensorTemperature returns the hottest valid GPU sensor reading.
func (c *GPUCollector) sensorTemperature(ctx context.Context) (float64, bool) {
	if c.sensors == nil {
		return 0, false
	}
	temps, err := c.sensors(ctx)
	if err != nil {
		c.logger.Debug("Temperature sensors not available via gopsutil", zap.Error(err))
	}

	var hottest float64
	found := false
	for _, t := range temps {
		if !isValidTemperature(t.Temperature) {
			continue
		}
		if !matchesSensor(strings.ToLower(t.SensorKey), gpuSensorKeys) {
			continue
		}
		if !found || t.Temperature > hottest {
			hottest = t.Temperature
			found = true
		}
	}
	if found {
		c.logger.Debug("GPU temperature collected from sensor", zap.Float64("temp_c", hottest))
	}
	return hottest, found
}

// matchesSensor checks if the sensor name contains any of the given key substrings.
func matchesSensor(name string, keys []string) bool {
	for _, key := range keys {
		if strings.Contains(name, key) {
			return true
		}
	}
	return false
}

// isValidTemperature returns true if the temperature is within a plausible range.
func isValidTemperature(temp float64) bool {
	return temp > minValidTemp && temp <= maxValidTemp
}
