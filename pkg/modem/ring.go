package modem

// Ring is the bounded sliding window of recent PCM samples the decode loop
// carves symbol windows from. Samples are addressed by their absolute
// position in the capture stream, so a scan offset held by the caller stays
// valid across FIFO eviction.
type Ring struct {
	buf      []float64
	capacity int
	start    uint64 // absolute index of buf[0]
}

// DefaultRingSymbols sizes the ring as a multiple of one symbol window.
const DefaultRingSymbols = 64

func NewRing(capacity int) *Ring {
	return &Ring{capacity: capacity}
}

// Append adds samples, evicting the oldest beyond capacity.
func (r *Ring) Append(samples []float64) {
	if len(samples) >= r.capacity {
		// the ring is entirely replaced
		r.start += uint64(len(r.buf) + len(samples) - r.capacity)
		r.buf = append(r.buf[:0], samples[len(samples)-r.capacity:]...)
		return
	}
	r.buf = append(r.buf, samples...)
	if over := len(r.buf) - r.capacity; over > 0 {
		r.start += uint64(over)
		r.buf = append(r.buf[:0], r.buf[over:]...)
	}
}

// Start is the absolute index of the oldest retained sample.
func (r *Ring) Start() uint64 {
	return r.start
}

// End is the absolute index one past the newest sample.
func (r *Ring) End() uint64 {
	return r.start + uint64(len(r.buf))
}

func (r *Ring) Len() int {
	return len(r.buf)
}

// Range returns the samples in [from, to). Both bounds must be retained.
func (r *Ring) Range(from, to uint64) []float64 {
	return r.buf[from-r.start : to-r.start]
}
