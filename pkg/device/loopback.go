package device

import (
	"time"

	"golang.org/x/exp/rand"
)

// Loopback wires playback straight back into capture: whatever the modem
// writes in one block arrives as input on the next. It stands in for the
// acoustic path in tests and also reproduces the self-interference of a
// speaker feeding an open microphone.
type Loopback struct {
	SampleRate float64 // pacing for the fake clock, 0 means free-running

	// NoiseAmplitude adds white Gaussian noise to the capture path to
	// simulate a noisy room. Zero keeps the channel clean.
	NoiseAmplitude float64
	NoiseSeed      uint64

	done chan struct{}
}

func (d *Loopback) Start(callback func(in, out []int32)) error {
	d.done = make(chan struct{})

	go func() {
		bufs := [2][]int32{
			make([]int32, BufferSize),
			make([]int32, BufferSize),
		}
		rng := rand.New(rand.NewSource(d.NoiseSeed))

		swap := false
		update := func() {
			in, out := bufs[0], bufs[1]
			if swap {
				in, out = out, in
			}
			swap = !swap

			if d.NoiseAmplitude > 0 {
				for i := range in {
					in[i] += int32(rng.NormFloat64() * d.NoiseAmplitude * 0x7fffffff)
				}
			}
			callback(in, out)
		}

		if d.SampleRate == 0 {
			for {
				select {
				case <-d.done:
					return
				default:
					update()
				}
			}
		}

		ticker := time.NewTicker(time.Duration(float64(BufferSize) / d.SampleRate * float64(time.Second)))
		defer ticker.Stop()
		for {
			select {
			case <-d.done:
				return
			case <-ticker.C:
				update()
			}
		}
	}()
	return nil
}

func (d *Loopback) Stop() {
	if d.done != nil {
		close(d.done)
		d.done = nil
	}
}
