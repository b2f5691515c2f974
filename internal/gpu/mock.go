package gpu

import "fmt"

// MockProvider serves fixed GPU data for testing.
type MockProvider struct {
	Devices []Metrics
	InitErr error
	Calls   int
}

// NewMockProvider returns a provider reporting the given devices.
func NewMockProvider(devices ...Metrics) *MockProvider {
	return &MockProvider{Devices: devices}
}

func (p *MockProvider) Init() error { return p.InitErr }

func (p *MockProvider) Shutdown() error { return nil }

func (p *MockProvider) DeviceCount() (int, error) { return len(p.Devices), nil }

func (p *MockProvider) Device(index int) (Metrics, error) {
	p.Calls++
	if index < 0 || index >= len(p.Devices) {
		return Metrics{}, fmt.Errorf("device %d: not found", index)
	}
	return p.Devices[index], nil
}

var _ Provider = (*MockProvider)(nil)
