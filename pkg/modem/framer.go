package modem

// Frames are delimited by two sentinel bytes inside the decoded stream.
// There is no length field and no integrity check: a payload byte equal to
// a sentinel corrupts framing, which the design documents and accepts.
const (
	StartMarker byte = 0x02 // ASCII STX
	EndMarker   byte = 0x03 // ASCII ETX
)

// Wrap delimits a payload as one packet: START ‖ payload ‖ END.
func Wrap(payload []byte) []byte {
	packet := make([]byte, 0, len(payload)+2)
	packet = append(packet, StartMarker)
	packet = append(packet, payload...)
	return append(packet, EndMarker)
}

// ExtractFrames scans a byte stream for complete START…END spans and
// returns their payloads in stream order. Bytes outside a span are
// discarded; a trailing unterminated span is not returned.
func ExtractFrames(stream []byte) [][]byte {
	var frames [][]byte
	var current []byte
	collecting := false

	for _, b := range stream {
		switch {
		case !collecting:
			if b == StartMarker {
				collecting = true
				current = nil
			}
		case b == EndMarker:
			frames = append(frames, current)
			collecting = false
		default:
			current = append(current, b)
		}
	}
	return frames
}
