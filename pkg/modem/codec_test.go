package modem

import (
	"bytes"
	"math"
	"testing"
)

// alignedConfig puts every symbol frequency exactly on a Goertzel bin and
// makes guard and symbol windows the same length, so an aligned decode walk
// recovers the packet deterministically.
func alignedConfig() Config {
	return Config{
		SampleRate:     48000,
		BitsPerSymbol:  4,
		SymbolDuration: 512.0 / 48000.0,
		GuardDuration:  1024.0 / 48000.0,
		BaseFrequency:  1500, // bin 16 at N=512
		FrequencyStep:  375,  // 4 bins apart
		Amplitude:      0.5,
		MinEnergy:      0.005,
	}
}

// decodeAligned walks the waveform in symbol windows from offset 0 and runs
// the full receive chain: detector, bit accumulator, framer.
func decodeAligned(cfg Config, wave []float64) [][]byte {
	det := Detector{Config: cfg}
	acc := NewBitAccumulator(cfg.BitsPerSymbol)

	var stream []byte
	win := cfg.SymbolSamples()
	for off := 0; off+win <= len(wave); off += win {
		if symbol, ok := det.Detect(wave[off : off+win]); ok {
			stream = append(stream, acc.Push(symbol)...)
		}
	}
	return ExtractFrames(stream)
}

func TestPacketWaveformLength(t *testing.T) {
	cfg := Config{
		SampleRate:     48000,
		BitsPerSymbol:  4,
		SymbolDuration: 0.035,
		GuardDuration:  0.1,
		BaseFrequency:  1500,
		FrequencyStep:  130,
		Amplitude:      0.5,
		MinEnergy:      0.005,
	}
	codec := Codec{Config: cfg}

	// 4 packet bytes (START, 'h', 'i', END) at 2 symbols per byte
	wave := codec.PacketWaveform(Wrap([]byte("hi")))

	want := 2*int(math.Round(48000*0.1)) + 8*int(math.Round(48000*0.035))
	if len(wave) != want {
		t.Errorf("waveform length = %d, want %d", len(wave), want)
	}

	// length depends only on payload size, not content
	other := codec.PacketWaveform(Wrap([]byte("yo")))
	if len(other) != len(wave) {
		t.Errorf("waveform length varies with payload content: %d vs %d", len(other), len(wave))
	}
}

func TestPacketWaveformWithinUnitRange(t *testing.T) {
	codec := Codec{Config: alignedConfig()}
	for _, s := range codec.PacketWaveform(Wrap([]byte("amplitude check"))) {
		if s < -1 || s > 1 {
			t.Fatalf("sample %v outside [-1, 1]", s)
		}
	}
}

func TestCodecDetectorRoundTrip(t *testing.T) {
	cfg := alignedConfig()
	codec := Codec{Config: cfg}

	for _, message := range []string{"hi", "Hello, 世界", "the quick brown fox"} {
		payload := []byte(message)
		frames := decodeAligned(cfg, codec.PacketWaveform(Wrap(payload)))

		if len(frames) != 1 {
			t.Fatalf("message %q: got %d frames, want 1", message, len(frames))
		}
		if !bytes.Equal(frames[0], payload) {
			t.Errorf("message %q: decoded %q", message, frames[0])
		}
	}
}

func TestSymbolsPerBytes(t *testing.T) {
	cases := []struct {
		n, b, want int
	}{
		{1, 4, 2},
		{4, 4, 8},
		{1, 2, 4},
		{3, 3, 8}, // 24 bits divide evenly
		{1, 3, 3}, // 8 bits need a padded third symbol
	}
	for _, c := range cases {
		if got := symbolsPerBytes(c.n, c.b); got != c.want {
			t.Errorf("symbolsPerBytes(%d, %d) = %d, want %d", c.n, c.b, got, c.want)
		}
	}
}
