// Package pcm converts between the sample formats the audio devices speak
// (signed 32-bit, little-endian bytes) and the float64 samples in [-1, 1]
// the modem works on.
package pcm

import "encoding/binary"

const scale = 0x7fffffff

// ToFloat64 converts device samples to normalized floats.
func ToFloat64(in []int32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v) / scale
	}
	return out
}

// FromFloat64 converts normalized floats to device samples, clipping to
// [-1, 1] so an overdriven waveform cannot wrap around.
func FromFloat64(in []float64) []int32 {
	out := make([]int32, len(in))
	for i, v := range in {
		out[i] = fromFloat(v)
	}
	return out
}

// WriteFloat64 is FromFloat64 into an existing buffer with a gain applied;
// dst samples beyond len(src) are zeroed.
func WriteFloat64(dst []int32, src []float64, gain float64) {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] = fromFloat(src[i] * gain)
	}
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
}

func fromFloat(v float64) int32 {
	switch {
	case v >= 1:
		return scale
	case v <= -1:
		return -scale
	default:
		return int32(v * scale)
	}
}

// Int32FromLE decodes little-endian s32 frames from a raw device buffer.
func Int32FromLE(raw []byte) []int32 {
	out := make([]int32, len(raw)/4)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out
}

// Int32ToLE encodes s32 frames into a raw device buffer.
func Int32ToLE(raw []byte, samples []int32) {
	for i, v := range samples {
		binary.LittleEndian.PutUint32(raw[i*4:], uint32(v))
	}
}
