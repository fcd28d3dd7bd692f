//go:build portaudio

package mic

import (
	"fmt"
	"io"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// Source reads frames from a PortAudio input stream. It implements
// snowgo.FrameSource.
type Source struct {
	mu     sync.Mutex
	stream *portaudio.Stream
	buf    []int16
	closed bool
}

// Open initialises PortAudio and starts a blocking input stream.
func Open(cfg Config) (*Source, error) {
	if cfg.FrameSize <= 0 || cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("mic: invalid frame size %d or sample rate %d", cfg.FrameSize, cfg.SampleRate)
	}
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("mic: initializing portaudio: %w", err)
	}

	device, err := inputDevice(cfg.Device)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}

	s := &Source{buf: make([]int16, cfg.FrameSize)}
	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: 1,
			Latency:  device.DefaultLowInputLatency,
		},
		SampleRate:      float64(cfg.SampleRate),
		FramesPerBuffer: cfg.FrameSize,
	}

	stream, err := portaudio.OpenStream(params, s.buf)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("mic: opening stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("mic: starting stream: %w", err)
	}
	s.stream = stream
	return s, nil
}

func inputDevice(id int) (*portaudio.DeviceInfo, error) {
	if id == DefaultDevice {
		dev, err := portaudio.DefaultInputDevice()
		if err != nil {
			return nil, fmt.Errorf("mic: default input device: %w", err)
		}
		return dev, nil
	}

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("mic: listing devices: %w", err)
	}
	if id < 0 || id >= len(devices) {
		return nil, fmt.Errorf("mic: invalid device ID %d", id)
	}
	if devices[id].MaxInputChannels <= 0 {
		return nil, fmt.Errorf("mic: device %q has no input channels", devices[id].Name)
	}
	return devices[id], nil
}

// ReadFrame blocks until one frame has been captured and copies it into buf.
func (s *Source) ReadFrame(buf []int16) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, io.EOF
	}
	if err := s.stream.Read(); err != nil {
		return 0, fmt.Errorf("mic: reading stream: %w", err)
	}
	return copy(buf, s.buf), nil
}

// Close stops the stream and releases PortAudio.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var firstErr error
	if err := s.stream.Stop(); err != nil {
		firstErr = err
	}
	if err := s.stream.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := portaudio.Terminate(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// ListDevices returns the devices that can capture audio.
func ListDevices() ([]Device, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("mic: initializing portaudio: %w", err)
	}
	defer portaudio.Terminate()

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("mic: listing devices: %w", err)
	}
	def, _ := portaudio.DefaultInputDevice()

	var out []Device
	for i, dev := range devices {
		if dev.MaxInputChannels <= 0 {
			continue
		}
		out = append(out, Device{
			ID:        i,
			Name:      dev.Name,
			Channels:  dev.MaxInputChannels,
			IsDefault: def != nil && def.Name == dev.Name,
		})
	}
	return out, nil
}
