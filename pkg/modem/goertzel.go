package modem

import "math"

// defaultMinPower is the per-bin discriminator applied when Detector.MinPower
// is left zero. Powers are normalized by N² before the comparison, so the
// value is independent of the symbol window length; a unit-amplitude
// Hann-windowed tone on its own bin normalizes to 1/16.
const defaultMinPower = 1e-3

// GoertzelPower estimates the signal power at one target frequency over the
// slice using the second-order Goertzel recurrence. O(N), no full transform.
func GoertzelPower(samples []float64, sampleRate, freq float64) float64 {
	n := float64(len(samples))
	k := math.Round(n * freq / sampleRate)
	w := 2 * math.Pi * k / n
	cw, sw := math.Cos(w), math.Sin(w)

	var q1, q2 float64
	for _, s := range samples {
		q0 := 2*cw*q1 - q2 + s
		q2, q1 = q1, q0
	}
	return (q1-q2*cw)*(q1-q2*cw) + (q2*sw)*(q2*sw)
}

// RMS is the root-mean-square energy of the slice.
func RMS(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// Detector estimates which symbol, if any, is present in one symbol-length
// window of PCM samples, by running a Goertzel filter per candidate
// frequency and picking the strongest bin.
type Detector struct {
	Config

	// MinPower is the normalized per-bin power a winning candidate must
	// reach; zero selects defaultMinPower. This is a secondary gate: the
	// RMS MinEnergy check dominates false-positive suppression.
	MinPower float64
}

// Detect returns the symbol carried by the slice, or ok=false when the
// slice is silence, noise, or an off-alphabet tone such as the guard.
func (d Detector) Detect(slice []float64) (symbol int, ok bool) {
	if RMS(slice) < d.MinEnergy {
		return 0, false
	}

	best, bestPower := 0, 0.0
	for s := 0; s < d.AlphabetSize(); s++ {
		power := GoertzelPower(slice, d.SampleRate, d.SymbolFrequency(s))
		if power > bestPower {
			best, bestPower = s, power
		}
	}

	minPower := d.MinPower
	if minPower == 0 {
		minPower = defaultMinPower
	}
	n := float64(len(slice))
	if bestPower/(n*n) < minPower {
		return 0, false
	}
	return best, true
}
