package modem

import (
	"math"

	"gonum.org/v1/gonum/dsp/window"
)

// Codec turns packet bytes into PCM waveforms. It is the shared knowledge
// of symbol timing and the frequency table: the Detector must be built
// from the same Config to understand what the Codec emits.
//
// Waveforms are unit amplitude; transmit gain is applied at playback.
type Codec struct {
	Config
}

// Symbol synthesizes one tone burst for a symbol value. The phase advances
// sample by sample and a Hann envelope is applied over the whole burst to
// suppress spectral leakage at symbol boundaries.
func (c Codec) Symbol(symbol int) []float64 {
	return c.tone(c.SymbolFrequency(symbol), c.SymbolSamples())
}

// GuardTone synthesizes the settle burst transmitted before and after the
// payload, at half the base frequency so it cannot be mistaken for a
// symbol. It carries no data.
func (c Codec) GuardTone(samples int) []float64 {
	return c.tone(c.BaseFrequency/2, samples)
}

func (c Codec) tone(freq float64, samples int) []float64 {
	out := make([]float64, samples)
	dt := 1 / c.SampleRate
	phase := 0.0
	for i := range out {
		out[i] = math.Sin(phase)
		phase += 2 * math.Pi * freq * dt
	}
	return window.Hann(out)
}

// PacketWaveform lays out guard tone, one symbol per BitsPerSymbol bits of
// the packet (bits packed little-endian into a rolling buffer), and a
// trailing guard tone. A partial symbol left at the end of the bit buffer
// is flushed zero-padded.
func (c Codec) PacketWaveform(packet []byte) []float64 {
	guard := c.GuardSamples()
	symbolSamples := c.SymbolSamples()
	symbols := symbolsPerBytes(len(packet), c.BitsPerSymbol)

	out := make([]float64, 0, 2*guard+symbols*symbolSamples)
	out = append(out, c.GuardTone(guard)...)

	mask := c.AlphabetSize() - 1
	acc, bits := 0, 0
	for _, b := range packet {
		acc |= int(b) << bits
		bits += 8
		for bits >= c.BitsPerSymbol {
			out = append(out, c.Symbol(acc&mask)...)
			acc >>= c.BitsPerSymbol
			bits -= c.BitsPerSymbol
		}
	}
	if bits > 0 {
		out = append(out, c.Symbol(acc&mask)...)
	}

	out = append(out, c.GuardTone(guard)...)
	return out
}

// symbolsPerBytes is the symbol count for n bytes at b bits per symbol,
// counting the zero-padded flush symbol when b does not divide 8n.
func symbolsPerBytes(n, b int) int {
	return (8*n + b - 1) / b
}
