package debugui

import "time"

// History is a fixed-size ring of frame times in milliseconds.
type History struct {
	samples []float32
	next    int
	filled  int
}

// NewHistory creates a ring holding the last size samples.
func NewHistory(size int) *History {
	return &History{samples: make([]float32, max(size, 1))}
}

func (h *History) Push(ms float32) {
	h.samples[h.next] = ms
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Samples returns the ring in storage order, for plotting.
func (h *History) Samples() []float32 {
	return h.samples
}

func (h *History) Len() int {
	return h.filled
}

// Stats returns the average, minimum and maximum of the recorded samples.
func (h *History) Stats() (avg, lo, hi float32) {
	if h.filled == 0 {
		return 0, 0, 0
	}
	lo, hi = h.samples[0], h.samples[0]
	var sum float32
	for _, s := range h.samples[:h.filled] {
		sum += s
		lo = min(lo, s)
		hi = max(hi, s)
	}
	return sum / float32(h.filled), lo, hi
}

// FrameTimer measures the time between successive Tick calls.
type FrameTimer struct {
	last time.Time
	now  func() time.Time
}

// NewFrameTimer creates a timer reading the wall clock.
func NewFrameTimer() *FrameTimer {
	return &FrameTimer{now: time.Now}
}

// Tick returns the elapsed time since the previous call, or zero on the first.
func (t *FrameTimer) Tick() time.Duration {
	now := t.now()
	defer func() { t.last = now }()
	if t.last.IsZero() {
		return 0
	}
	return now.Sub(t.last)
}
