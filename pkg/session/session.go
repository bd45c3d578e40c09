// Package session orchestrates the acoustic modem: it owns the channel
// configuration, drives the continuous decode loop off the audio device
// callback, and exposes the start/stop/send command surface with a channel
// of decoded-message, status, and error events.
package session

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"Tonegram/pkg/device"
	"Tonegram/pkg/modem"
	"Tonegram/pkg/pcm"
)

const (
	// byteQueueCapacity bounds the decoded byte queue the framer scans.
	// A START whose END never arrives scrolls out of this window.
	byteQueueCapacity = 512

	playbackQueueSize = 8
	eventBufferSize   = 16
)

// Session is one half-duplex modem bound to a device. All methods are safe
// to call from any goroutine; the device callback and the command surface
// serialize on one mutex.
type Session struct {
	mu sync.Mutex

	cfg   modem.Config
	codec modem.Codec
	det   modem.Detector

	dev        device.Device
	devRunning bool
	listening  bool

	ring    *modem.Ring
	bits    *modem.BitAccumulator
	decoded *modem.ByteQueue
	scanPos uint64 // absolute sample index of the next symbol window

	playback chan []float64
	current  []float64 // waveform currently being played out

	events chan Event

	log *logrus.Entry
}

// New builds an idle session on the given device. The configuration must
// satisfy the channel invariants (see modem.Config.Validate).
func New(dev device.Device, cfg modem.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		dev:      dev,
		playback: make(chan []float64, playbackQueueSize),
		events:   make(chan Event, eventBufferSize),
		log:      logrus.WithField("component", "session"),
	}
	s.applyConfigLocked(cfg)
	s.resetDecodeLocked()
	return s, nil
}

// Events is the session's notification channel. Emission never blocks the
// decode loop: events are dropped when the consumer lags behind.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Start acquires the device and begins the continuous decode loop. It
// returns a *PermissionError and leaves the session idle when the device
// cannot be opened. Starting an already listening session is a no-op.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listening {
		return nil
	}
	s.resetDecodeLocked()
	if err := s.ensureDeviceLocked(); err != nil {
		return &PermissionError{Err: err}
	}
	s.listening = true
	s.log.WithFields(logrus.Fields{
		"sample_rate":     s.cfg.SampleRate,
		"bits_per_symbol": s.cfg.BitsPerSymbol,
		"base_frequency":  s.cfg.BaseFrequency,
	}).Info("listening started")
	s.emitLocked(Event{Kind: EventStatus, Text: "listening started"})
	return nil
}

// Stop releases the device and discards the decode state. Idempotent.
func (s *Session) Stop() {
	s.mu.Lock()
	var dev device.Device
	if s.devRunning {
		dev = s.dev
		s.devRunning = false
	}
	wasListening := s.listening
	s.listening = false
	s.resetDecodeLocked()
	s.discardPlaybackLocked()
	if wasListening {
		s.log.Info("listening stopped")
		s.emitLocked(Event{Kind: EventStatus, Text: "listening stopped"})
	}
	s.mu.Unlock()

	// Released outside the lock: the device may wait for an in-flight
	// callback, and the callback takes the lock.
	if dev != nil {
		dev.Stop()
	}
}

// Send frames the message, synthesizes the packet waveform and schedules it
// for one-shot playback. It returns once the waveform is queued, not when
// playback completes. Sending does not pause the decode loop, so an open
// microphone will pick the transmission up again (half-duplex).
func (s *Session) Send(text string) error {
	if !utf8.ValidString(text) {
		return &EncodingError{Reason: "text is not valid UTF-8"}
	}

	s.mu.Lock()
	wave := s.codec.PacketWaveform(modem.Wrap([]byte(text)))
	err := s.ensureDeviceLocked()
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("output device not ready: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"bytes":   len(text),
		"samples": len(wave),
	}).Debug("packet scheduled for playback")
	s.playback <- wave
	return nil
}

// UpdateConfig merges the overlay into the session configuration and
// recomputes the derived sample counts and buffer capacities. Safe while
// listening; buffered but undecoded audio is discarded.
func (s *Session) UpdateConfig(o modem.Overlay) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.cfg.Merge(o)
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.applyConfigLocked(cfg)
	s.resetDecodeLocked()
	return nil
}

// Advance is the decode step: it appends newly captured samples to the ring
// buffer, walks it in non-overlapping symbol windows, and returns the
// events this batch produced. The device callback drives it while
// listening, but it is equally callable by a test harness or any other
// scheduler.
func (s *Session) Advance(samples []float64) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advanceLocked(samples)
}

func (s *Session) advanceLocked(samples []float64) []Event {
	s.ring.Append(samples)
	if s.scanPos < s.ring.Start() {
		// the scan fell behind and eviction caught up with it
		s.scanPos = s.ring.Start()
	}

	win := uint64(s.cfg.SymbolSamples())
	for s.scanPos+win <= s.ring.End() {
		slice := s.ring.Range(s.scanPos, s.scanPos+win)
		s.scanPos += win

		symbol, ok := s.det.Detect(slice)
		if !ok {
			continue
		}
		s.decoded.Append(s.bits.Push(symbol)...)
	}

	frames := modem.ExtractFrames(s.decoded.Bytes())
	if len(frames) == 0 {
		return nil
	}

	// Most-recent-wins: only the last complete frame of this scan pass is
	// surfaced, and the accumulators are fully reset so no stale bytes
	// bleed into the next message. Bytes queued after the frame are lost
	// with it.
	payload := frames[len(frames)-1]
	s.bits.Reset()
	s.decoded.Reset()

	s.log.WithField("bytes", len(payload)).Debug("frame decoded")
	return []Event{{Kind: EventMessage, Text: string(payload)}}
}

// tick is the per-block device callback: capture feeds the decode step,
// playback drains the send queue. It must not block.
func (s *Session) tick(in, out []int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			s.emitLocked(Event{Kind: EventError, Err: fmt.Errorf("decode tick: %v", r)})
		}
	}()

	if s.listening {
		for _, ev := range s.advanceLocked(pcm.ToFloat64(in)) {
			s.emitLocked(ev)
		}
	}
	s.fillOutputLocked(out)
}

func (s *Session) fillOutputLocked(out []int32) {
	if s.current == nil {
		select {
		case s.current = <-s.playback:
		default:
		}
	}
	pcm.WriteFloat64(out, s.current, s.cfg.Amplitude)
	if s.current != nil {
		n := min(len(out), len(s.current))
		s.current = s.current[n:]
		if len(s.current) == 0 {
			s.current = nil
		}
	}
}

func (s *Session) ensureDeviceLocked() error {
	if s.devRunning {
		return nil
	}
	if err := s.dev.Start(s.tick); err != nil {
		return err
	}
	s.devRunning = true
	return nil
}

func (s *Session) applyConfigLocked(cfg modem.Config) {
	s.cfg = cfg
	s.codec = modem.Codec{Config: cfg}
	s.det = modem.Detector{Config: cfg}
}

func (s *Session) resetDecodeLocked() {
	s.ring = modem.NewRing(modem.DefaultRingSymbols * s.cfg.SymbolSamples())
	s.bits = modem.NewBitAccumulator(s.cfg.BitsPerSymbol)
	s.decoded = modem.NewByteQueue(byteQueueCapacity)
	s.scanPos = 0
}

// discardPlaybackLocked cuts any transmission still queued or mid-play so
// it cannot bleed into the next session.
func (s *Session) discardPlaybackLocked() {
	s.current = nil
	for {
		select {
		case <-s.playback:
		default:
			return
		}
	}
}

func (s *Session) emitLocked(ev Event) {
	select {
	case s.events <- ev:
	default:
		s.log.WithField("kind", ev.Kind).Debug("event dropped, consumer lagging")
	}
}
