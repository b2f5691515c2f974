// Package window implements the fixed-capacity rolling sample buffer behind
// every dashboard chart.
package window

// Size is the number of samples every dashboard window retains.
const Size = 50

// Window is an ordered, fixed-length sequence of samples. It starts
// zero-filled and its length never changes: each Push appends the newest
// sample at the end and drops the oldest from the front.
type Window struct {
	data []float64
}

// New returns a zero-filled window of the given capacity.
// A non-positive capacity yields a window of capacity 1.
func New(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}
	return &Window{data: make([]float64, capacity)}
}

// Push appends v and evicts the oldest sample.
func (w *Window) Push(v float64) {
	copy(w.data, w.data[1:])
	w.data[len(w.data)-1] = v
}

// Len returns the window capacity, which is also its length.
func (w *Window) Len() int { return len(w.data) }

// Latest returns the newest sample.
func (w *Window) Latest() float64 { return w.data[len(w.data)-1] }

// Values returns a copy of the samples, oldest first.
func (w *Window) Values() []float64 {
	out := make([]float64, len(w.data))
	copy(out, w.data)
	return out
}

// Max returns the largest sample in the window.
func (w *Window) Max() float64 {
	m := w.data[0]
	for _, v := range w.data[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
