package snowgo

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

// WAVSource reads 16-bit mono PCM from a RIFF/WAVE stream.
type WAVSource struct {
	*PCMSource
	sampleRate int
	dataSize   int64
}

// NewWAVSource parses the WAVE header from r and positions the reader at the
// start of the sample data. Anything other than 16-bit mono PCM is rejected
// with ErrUnsupportedAudio.
func NewWAVSource(r io.Reader) (*WAVSource, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return nil, fmt.Errorf("reading RIFF header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, fmt.Errorf("%w: not a RIFF/WAVE stream", ErrUnsupportedAudio)
	}

	var (
		haveFmt    bool
		format     uint16
		channels   uint16
		sampleRate uint32
		bits       uint16
	)

	for {
		var hdr [8]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return nil, fmt.Errorf("reading chunk header: %w", err)
		}
		id := string(hdr[0:4])
		size := int64(binary.LittleEndian.Uint32(hdr[4:8]))

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, fmt.Errorf("%w: fmt chunk too short (%d bytes)", ErrUnsupportedAudio, size)
			}
			var f [16]byte
			if _, err := io.ReadFull(r, f[:]); err != nil {
				return nil, fmt.Errorf("reading fmt chunk: %w", err)
			}
			format = binary.LittleEndian.Uint16(f[0:2])
			channels = binary.LittleEndian.Uint16(f[2:4])
			sampleRate = binary.LittleEndian.Uint32(f[4:8])
			bits = binary.LittleEndian.Uint16(f[14:16])
			if err := skip(r, size-16+size%2); err != nil {
				return nil, err
			}
			haveFmt = true

		case "data":
			if !haveFmt {
				return nil, fmt.Errorf("%w: data chunk before fmt chunk", ErrUnsupportedAudio)
			}
			if format != wavFormatPCM && format != wavFormatExtensible {
				return nil, fmt.Errorf("%w: format tag %d is not PCM", ErrUnsupportedAudio, format)
			}
			if channels != MockNumChannels || bits != MockBitsPerSample {
				return nil, fmt.Errorf("%w: %d channel(s) at %d bits, want mono 16-bit",
					ErrUnsupportedAudio, channels, bits)
			}
			return &WAVSource{
				PCMSource:  NewPCMSource(io.LimitReader(r, size)),
				sampleRate: int(sampleRate),
				dataSize:   size,
			}, nil

		default:
			if err := skip(r, size+size%2); err != nil {
				return nil, err
			}
		}
	}
}

// SampleRate returns the sample rate declared in the header.
func (w *WAVSource) SampleRate() int { return w.sampleRate }

// NumSamples returns the number of samples declared in the data chunk.
func (w *WAVSource) NumSamples() int64 { return w.dataSize / 2 }

func skip(r io.Reader, n int64) error {
	if n <= 0 {
		return nil
	}
	if _, err := io.CopyN(io.Discard, r, n); err != nil {
		return fmt.Errorf("skipping chunk: %w", err)
	}
	return nil
}
