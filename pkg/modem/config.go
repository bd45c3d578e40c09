package modem

import (
	"fmt"
	"math"
)

// Config describes one acoustic channel. Both ends of a link must use the
// same values or the symbol frequencies will not line up; that is a
// deployment error, not something the protocol detects.
type Config struct {
	SampleRate     float64 `yaml:"sample_rate"`     // Hz
	BitsPerSymbol  int     `yaml:"bits_per_symbol"` // alphabet size is 1<<BitsPerSymbol
	SymbolDuration float64 `yaml:"symbol_duration"` // seconds per tone burst
	GuardDuration  float64 `yaml:"guard_duration"`  // seconds of settle tone around the payload
	BaseFrequency  float64 `yaml:"base_frequency"`  // Hz, tone of symbol 0
	FrequencyStep  float64 `yaml:"frequency_step"`  // Hz between adjacent symbols
	Amplitude      float64 `yaml:"amplitude"`       // playback gain in [0, 1]
	MinEnergy      float64 `yaml:"min_energy"`      // RMS gate, slices below it are skipped
}

// Overlay is a partial Config; nil fields keep their current value.
type Overlay struct {
	SampleRate     *float64 `yaml:"sample_rate"`
	BitsPerSymbol  *int     `yaml:"bits_per_symbol"`
	SymbolDuration *float64 `yaml:"symbol_duration"`
	GuardDuration  *float64 `yaml:"guard_duration"`
	BaseFrequency  *float64 `yaml:"base_frequency"`
	FrequencyStep  *float64 `yaml:"frequency_step"`
	Amplitude      *float64 `yaml:"amplitude"`
	MinEnergy      *float64 `yaml:"min_energy"`
}

// DefaultConfig is an audible mid-band channel that survives laptop
// speakers and microphones.
func DefaultConfig() Config {
	return Config{
		SampleRate:     48000,
		BitsPerSymbol:  4,
		SymbolDuration: 0.035,
		GuardDuration:  0.1,
		BaseFrequency:  1500,
		FrequencyStep:  130,
		Amplitude:      0.5,
		MinEnergy:      0.005,
	}
}

func (c Config) AlphabetSize() int {
	return 1 << c.BitsPerSymbol
}

// SymbolFrequency returns the tone carrying the given symbol value.
func (c Config) SymbolFrequency(symbol int) float64 {
	return c.BaseFrequency + float64(symbol)*c.FrequencyStep
}

// SymbolSamples is the number of PCM samples in one tone burst.
func (c Config) SymbolSamples() int {
	return int(math.Round(c.SampleRate * c.SymbolDuration))
}

// GuardSamples is the number of PCM samples in one guard tone.
func (c Config) GuardSamples() int {
	return int(math.Round(c.SampleRate * c.GuardDuration))
}

// Merge returns a copy of c with every non-nil Overlay field applied.
func (c Config) Merge(o Overlay) Config {
	if o.SampleRate != nil {
		c.SampleRate = *o.SampleRate
	}
	if o.BitsPerSymbol != nil {
		c.BitsPerSymbol = *o.BitsPerSymbol
	}
	if o.SymbolDuration != nil {
		c.SymbolDuration = *o.SymbolDuration
	}
	if o.GuardDuration != nil {
		c.GuardDuration = *o.GuardDuration
	}
	if o.BaseFrequency != nil {
		c.BaseFrequency = *o.BaseFrequency
	}
	if o.FrequencyStep != nil {
		c.FrequencyStep = *o.FrequencyStep
	}
	if o.Amplitude != nil {
		c.Amplitude = *o.Amplitude
	}
	if o.MinEnergy != nil {
		c.MinEnergy = *o.MinEnergy
	}
	return c
}

// Validate checks the channel invariants, in particular that the whole
// alphabet stays below Nyquist.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %v", c.SampleRate)
	}
	if c.BitsPerSymbol < 1 || c.BitsPerSymbol > 8 {
		return fmt.Errorf("bits per symbol must be in [1, 8], got %d", c.BitsPerSymbol)
	}
	if c.SymbolDuration <= 0 {
		return fmt.Errorf("symbol duration must be positive, got %v", c.SymbolDuration)
	}
	if c.GuardDuration < 0 {
		return fmt.Errorf("guard duration must not be negative, got %v", c.GuardDuration)
	}
	if c.BaseFrequency <= 0 || c.FrequencyStep <= 0 {
		return fmt.Errorf("base frequency and frequency step must be positive, got %v and %v",
			c.BaseFrequency, c.FrequencyStep)
	}
	top := c.SymbolFrequency(c.AlphabetSize() - 1)
	if top >= c.SampleRate/2 {
		return fmt.Errorf("top symbol frequency %v Hz exceeds Nyquist %v Hz", top, c.SampleRate/2)
	}
	if c.Amplitude < 0 || c.Amplitude > 1 {
		return fmt.Errorf("amplitude must be in [0, 1], got %v", c.Amplitude)
	}
	if c.MinEnergy < 0 {
		return fmt.Errorf("min energy must not be negative, got %v", c.MinEnergy)
	}
	return nil
}
