package modem

import (
	"reflect"
	"testing"
)

func TestExtractSingleFrame(t *testing.T) {
	frames := ExtractFrames([]byte{StartMarker, 0x41, 0x42, EndMarker})
	want := [][]byte{{0x41, 0x42}}
	if !reflect.DeepEqual(frames, want) {
		t.Errorf("got %v, want %v", frames, want)
	}
}

func TestExtractWithoutStartYieldsNothing(t *testing.T) {
	if frames := ExtractFrames([]byte{0x41, 0x42, EndMarker, 0x43}); len(frames) != 0 {
		t.Errorf("got %v, want no frames", frames)
	}
}

func TestExtractMultipleFramesInOrder(t *testing.T) {
	stream := append(Wrap([]byte("one")), Wrap([]byte("two"))...)
	stream = append(stream, 0x7f) // trailing junk outside any span
	frames := ExtractFrames(stream)

	want := [][]byte{[]byte("one"), []byte("two")}
	if !reflect.DeepEqual(frames, want) {
		t.Errorf("got %v, want %v", frames, want)
	}
}

func TestUnterminatedFrameIsNotReturned(t *testing.T) {
	if frames := ExtractFrames([]byte{StartMarker, 0x41, 0x42}); len(frames) != 0 {
		t.Errorf("got %v, want no frames", frames)
	}
}

func TestWrapDelimitsPayload(t *testing.T) {
	packet := Wrap([]byte("hi"))
	want := []byte{StartMarker, 'h', 'i', EndMarker}
	if !reflect.DeepEqual(packet, want) {
		t.Errorf("got %v, want %v", packet, want)
	}
}

func TestEmptyPayloadRoundTrip(t *testing.T) {
	frames := ExtractFrames(Wrap(nil))
	if len(frames) != 1 || len(frames[0]) != 0 {
		t.Errorf("got %v, want one empty frame", frames)
	}
}
