package snowgo

import (
	"encoding/binary"
	"errors"
	"io"
)

// FrameSource produces 16-bit mono PCM frames.
//
// ReadFrame fills buf with up to len(buf) samples and returns how many were
// written. It returns io.EOF once the source is exhausted; a final short frame
// may be returned together with a nil error before that.
type FrameSource interface {
	ReadFrame(buf []int16) (int, error)
}

// PCMSource reads raw little-endian signed 16-bit samples from a reader.
type PCMSource struct {
	r       io.Reader
	scratch []byte
}

// NewPCMSource wraps r, which must yield s16le mono audio.
func NewPCMSource(r io.Reader) *PCMSource {
	return &PCMSource{r: r}
}

// ReadFrame implements FrameSource.
func (s *PCMSource) ReadFrame(buf []int16) (int, error) {
	need := len(buf) * 2
	if cap(s.scratch) < need {
		s.scratch = make([]byte, need)
	}
	b := s.scratch[:need]

	n, err := io.ReadFull(s.r, b)
	samples := n / 2
	for i := 0; i < samples; i++ {
		buf[i] = int16(binary.LittleEndian.Uint16(b[i*2:]))
	}

	switch {
	case err == nil:
		return samples, nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		if samples == 0 {
			return 0, io.EOF
		}
		return samples, nil
	default:
		return samples, err
	}
}

// SliceSource serves frames from an in-memory sample buffer.
type SliceSource struct {
	samples []int16
	pos     int
}

// NewSliceSource returns a FrameSource over samples.
func NewSliceSource(samples []int16) *SliceSource {
	return &SliceSource{samples: samples}
}

// ReadFrame implements FrameSource.
func (s *SliceSource) ReadFrame(buf []int16) (int, error) {
	if s.pos >= len(s.samples) {
		return 0, io.EOF
	}
	n := copy(buf, s.samples[s.pos:])
	s.pos += n
	return n, nil
}
