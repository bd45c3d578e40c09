package modem

// BitAccumulator collects B-bit symbol values into bytes, mirroring the
// little-endian rolling bit buffer the Codec packs from. Both sides must
// agree on the ordering or decoded bytes come out permuted.
type BitAccumulator struct {
	bitsPerSymbol int
	acc           uint32
	bits          int
}

func NewBitAccumulator(bitsPerSymbol int) *BitAccumulator {
	return &BitAccumulator{bitsPerSymbol: bitsPerSymbol}
}

// Push adds one symbol worth of bits and returns any completed bytes.
// At most one byte completes per call while bitsPerSymbol <= 8.
func (a *BitAccumulator) Push(symbol int) []byte {
	a.acc |= uint32(symbol) << a.bits
	a.bits += a.bitsPerSymbol

	var out []byte
	for a.bits >= 8 {
		out = append(out, byte(a.acc))
		a.acc >>= 8
		a.bits -= 8
	}
	return out
}

// Reset drops any partial byte in flight.
func (a *BitAccumulator) Reset() {
	a.acc = 0
	a.bits = 0
}

// ByteQueue is the bounded queue of the most recently decoded bytes that
// the framer scans. When full, the oldest bytes are evicted; a START whose
// END never arrives eventually scrolls out this way, with no error raised.
type ByteQueue struct {
	buf      []byte
	capacity int
}

func NewByteQueue(capacity int) *ByteQueue {
	return &ByteQueue{capacity: capacity}
}

func (q *ByteQueue) Append(bytes ...byte) {
	q.buf = append(q.buf, bytes...)
	if over := len(q.buf) - q.capacity; over > 0 {
		q.buf = append(q.buf[:0], q.buf[over:]...)
	}
}

// Bytes exposes the queue contents for a framer scan pass.
func (q *ByteQueue) Bytes() []byte {
	return q.buf
}

func (q *ByteQueue) Len() int {
	return len(q.buf)
}

func (q *ByteQueue) Reset() {
	q.buf = q.buf[:0]
}
