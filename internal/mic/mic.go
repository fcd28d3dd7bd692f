// Package mic captures 16-bit mono microphone audio as detector frames.
//
// Capture uses PortAudio and is only compiled with the "portaudio" build tag;
// other builds report ErrUnavailable.
package mic

import "errors"

// ErrUnavailable is returned when the binary was built without PortAudio.
var ErrUnavailable = errors.New("mic: built without portaudio support (rebuild with -tags portaudio)")

// DefaultDevice selects the system default input.
const DefaultDevice = -1

// Config describes the capture stream.
type Config struct {
	Device     int
	SampleRate int
	FrameSize  int
}

// Device is an input-capable audio device.
type Device struct {
	ID        int    `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Channels  int    `json:"channels" yaml:"channels"`
	IsDefault bool   `json:"default" yaml:"default"`
}
