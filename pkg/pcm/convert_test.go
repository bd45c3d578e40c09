package pcm

import (
	"math"
	"reflect"
	"testing"
)

func TestFloatRoundTrip(t *testing.T) {
	in := []float64{0, 0.5, -0.5, 0.999, -0.999}
	out := ToFloat64(FromFloat64(in))
	for i := range in {
		if math.Abs(out[i]-in[i]) > 1e-9 {
			t.Errorf("sample %d: %v -> %v", i, in[i], out[i])
		}
	}
}

func TestFromFloat64Clips(t *testing.T) {
	out := FromFloat64([]float64{2.0, -2.0, 1.0, -1.0})
	if out[0] != 0x7fffffff || out[1] != -0x7fffffff {
		t.Errorf("overdriven samples not clipped: %v", out[:2])
	}
	if out[2] != 0x7fffffff || out[3] != -0x7fffffff {
		t.Errorf("full-scale samples wrong: %v", out[2:])
	}
}

func TestWriteFloat64AppliesGainAndZeroFills(t *testing.T) {
	dst := []int32{1, 2, 3, 4}
	WriteFloat64(dst, []float64{1, -1}, 0.5)

	if dst[0] != 0x7fffffff/2 || dst[1] != -(0x7fffffff / 2) {
		t.Errorf("gain not applied: %v", dst[:2])
	}
	if dst[2] != 0 || dst[3] != 0 {
		t.Errorf("tail not zeroed: %v", dst[2:])
	}
}

func TestLittleEndianRoundTrip(t *testing.T) {
	samples := []int32{0, 1, -1, math.MaxInt32, math.MinInt32}
	raw := make([]byte, len(samples)*4)
	Int32ToLE(raw, samples)

	if got := Int32FromLE(raw); !reflect.DeepEqual(got, samples) {
		t.Errorf("got %v, want %v", got, samples)
	}
}
