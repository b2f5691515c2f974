package gpu

import "testing"

func TestBytesToMB(t *testing.T) {
	tests := []struct {
		name  string
		bytes uint64
		want  float64
	}{
		{"zero", 0, 0},
		{"one MiB", 1 << 20, 1},
		{"half MiB", 512 * 1024, 0.5},
		{"1.5 GiB plus half MiB", 1536<<20 + 512*1024, 1536.5},
		{"below one MiB", 1024, 1.0 / 1024},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bytesToMB(tt.bytes); got != tt.want {
				t.Errorf("bytesToMB(%d) = %v, want %v", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestMockProvider_Device(t *testing.T) {
	p := NewMockProvider(Metrics{Name: "NVIDIA T4", MemoryUsedMB: 2048.25, MemoryTotMB: 15360})
	n, err := p.DeviceCount()
	if err != nil || n != 1 {
		t.Fatalf("DeviceCount() = %d, %v", n, err)
	}
	m, err := p.Device(0)
	if err != nil {
		t.Fatal(err)
	}
	if m.MemoryUsedMB != 2048.25 {
		t.Errorf("MemoryUsedMB = %v, want 2048.25", m.MemoryUsedMB)
	}
	if _, err := p.Device(1); err == nil {
		t.Error("Device(1) succeeded on a single-GPU mock")
	}
}
