// Package device abstracts the audio capture/playback hardware behind a
// single mono duplex callback. Each callback invocation hands the modem one
// block of captured samples and one block to fill for playback; the modem
// must not block inside it.
package device

// Device is a mono duplex audio device.
type Device interface {
	// Start opens the device and begins invoking callback once per audio
	// block. It returns an error when the hardware cannot be acquired.
	Start(callback func(in, out []int32)) error
	Stop()
}

// BufferSize is the block size, in frames, the devices are driven at.
const BufferSize = 512
