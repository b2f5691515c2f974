//go:build !nonvml

package gpu

import (
	"fmt"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// NVMLProvider reads metrics from the NVIDIA management library.
type NVMLProvider struct{}

// NewNVMLProvider returns a provider backed by the system's NVML library.
func NewNVMLProvider() *NVMLProvider {
	return &NVMLProvider{}
}

// Init loads NVML. It fails on hosts without an NVIDIA driver.
func (p *NVMLProvider) Init() (err error) {
	// nvml.Init can panic on hosts without libnvidia-ml.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrUnavailable, r)
		}
	}()
	if ret := nvml.Init(); ret != nvml.SUCCESS {
		return fmt.Errorf("%w: %s", ErrUnavailable, nvml.ErrorString(ret))
	}
	return nil
}

func (p *NVMLProvider) Shutdown() error {
	if ret := nvml.Shutdown(); ret != nvml.SUCCESS {
		return fmt.Errorf("NVML shutdown failed: %s", nvml.ErrorString(ret))
	}
	return nil
}

func (p *NVMLProvider) DeviceCount() (int, error) {
	count, ret := nvml.DeviceGetCount()
	if ret != nvml.SUCCESS {
		return 0, fmt.Errorf("failed to get device count: %s", nvml.ErrorString(ret))
	}
	return count, nil
}

// Device reads utilization, temperature and memory of one GPU. Individual
// readings that fail are left at zero.
func (p *NVMLProvider) Device(index int) (Metrics, error) {
	device, ret := nvml.DeviceGetHandleByIndex(index)
	if ret != nvml.SUCCESS {
		return Metrics{}, fmt.Errorf("device %d: %s", index, nvml.ErrorString(ret))
	}

	m := Metrics{Index: index}
	if name, ret := device.GetName(); ret == nvml.SUCCESS {
		m.Name = name
	}
	if util, ret := device.GetUtilizationRates(); ret == nvml.SUCCESS {
		m.Utilization = util.Gpu
	}
	if temp, ret := device.GetTemperature(nvml.TEMPERATURE_GPU); ret == nvml.SUCCESS {
		m.Temperature = temp
	}
	if mem, ret := device.GetMemoryInfo(); ret == nvml.SUCCESS {
		m.MemoryUsedMB = bytesToMB(mem.Used)
		m.MemoryTotMB = bytesToMB(mem.Total)
	}
	return m, nil
}

var _ Provider = (*NVMLProvider)(nil)
