package device

import (
	"fmt"

	"github.com/gen2brain/malgo"

	"Tonegram/pkg/pcm"
)

// Malgo drives the system default capture and playback devices through
// miniaudio in full-duplex mode, one mono s32 stream each way.
type Malgo struct {
	SampleRate float64

	ctx *malgo.AllocatedContext
	dev *malgo.Device
}

func (m *Malgo) Start(callback func(in, out []int32)) error {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("init audio context: %w", err)
	}

	cfg := malgo.DefaultDeviceConfig(malgo.Duplex)
	cfg.SampleRate = uint32(m.SampleRate)
	cfg.PeriodSizeInFrames = BufferSize
	cfg.Capture.Format = malgo.FormatS32
	cfg.Capture.Channels = 1
	cfg.Playback.Format = malgo.FormatS32
	cfg.Playback.Channels = 1

	callbacks := malgo.DeviceCallbacks{
		Data: func(outputSamples, inputSamples []byte, frameCount uint32) {
			in := pcm.Int32FromLE(inputSamples)
			out := make([]int32, frameCount)
			callback(in, out)
			pcm.Int32ToLE(outputSamples, out)
		},
	}

	dev, err := malgo.InitDevice(ctx.Context, cfg, callbacks)
	if err != nil {
		ctx.Uninit()
		ctx.Free()
		return fmt.Errorf("open duplex device: %w", err)
	}
	if err := dev.Start(); err != nil {
		dev.Uninit()
		ctx.Uninit()
		ctx.Free()
		return fmt.Errorf("start duplex device: %w", err)
	}

	m.ctx, m.dev = ctx, dev
	return nil
}

func (m *Malgo) Stop() {
	if m.dev != nil {
		m.dev.Uninit()
		m.dev = nil
	}
	if m.ctx != nil {
		m.ctx.Uninit()
		m.ctx.Free()
		m.ctx = nil
	}
}
