//go:build nonvml

package gpu

// NVMLProvider stub, used when building without NVIDIA libraries.
type NVMLProvider struct{}

func NewNVMLProvider() *NVMLProvider {
	return &NVMLProvider{}
}

func (p *NVMLProvider) Init() error {
	return ErrUnavailable
}

func (p *NVMLProvider) Shutdown() error {
	return nil
}

func (p *NVMLProvider) DeviceCount() (int, error) {
	return 0, ErrUnavailable
}

func (p *NVMLProvider) Device(int) (Metrics, error) {
	return Metrics{}, ErrUnavailable
}

var _ Provider = (*NVMLProvider)(nil)
