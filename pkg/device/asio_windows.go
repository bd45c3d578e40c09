//go:build windows

package device

import (
	"fmt"

	"github.com/xsjk/go-asio"
)

// ASIOMono drives one input and one output channel of an ASIO device.
// Lower latency than the shared-mode path, Windows only.
type ASIOMono struct {
	DeviceName string
	SampleRate float64
	InChannel  int
	OutChannel int

	device asio.Device
}

func (a *ASIOMono) Start(callback func(in, out []int32)) (err error) {
	// go-asio has no error returns; a missing driver panics.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("open asio device %q: %v", a.DeviceName, r)
		}
	}()

	a.device.Load(a.DeviceName)
	a.device.SetSampleRate(a.SampleRate)
	a.device.Open()
	a.device.Start(func(in, out [][]int32) {
		callback(in[a.InChannel], out[a.OutChannel])
	})
	return nil
}

func (a *ASIOMono) Stop() {
	a.device.Stop()
	a.device.Close()
	a.device.Unload()
}
