//go:build !portaudio

package mic

// Source is unavailable without PortAudio.
type Source struct{}

// Open always fails with ErrUnavailable.
func Open(Config) (*Source, error) { return nil, ErrUnavailable }

// ReadFrame always fails with ErrUnavailable.
func (*Source) ReadFrame([]int16) (int, error) { return 0, ErrUnavailable }

// Close is a no-op.
func (*Source) Close() error { return nil }

// ListDevices always fails with ErrUnavailable.
func ListDevices() ([]Device, error) { return nil, ErrUnavailable }
