// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"

	goaudio "github.com/go-audio/audio"
)

// IntPCMReader is the pull side of the go-audio decoders (wav, aiff).
type IntPCMReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// IntPCM adapts a go-audio integer PCM decoder to Source.
type IntPCM struct {
	r        IntPCMReader
	format   *goaudio.Format
	bitDepth int
	scale    float32
	frames   int64
	buf      *goaudio.IntBuffer
}

// NewIntPCM wraps r, whose samples are signed integers of bitDepth bits.
// frames is the stream length in frames when known, or -1.
func NewIntPCM(r IntPCMReader, format *goaudio.Format, bitDepth int, frames int64) (*IntPCM, error) {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, ErrInvalidBitDepth
	}

	return &IntPCM{
		r:        r,
		format:   format,
		bitDepth: bitDepth,
		scale:    1 / float32(int64(1)<<(bitDepth-1)),
		frames:   frames,
	}, nil
}

func (s *IntPCM) SampleRate() int { return s.format.SampleRate }
func (s *IntPCM) Channels() int   { return s.format.NumChannels }
func (s *IntPCM) Close() error    { return nil }
func (s *IntPCM) Frames() int64   { return s.frames }
func (s *IntPCM) BitDepth() int   { return s.bitDepth }

func (s *IntPCM) BufSize() int {
	if s.buf != nil {
		return cap(s.buf.Data)
	}
	return 4096
}

func (s *IntPCM) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.buf == nil || cap(s.buf.Data) < len(dst) {
		s.buf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         s.format,
			SourceBitDepth: s.bitDepth,
		}
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.r.PCMBuffer(s.buf)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, io.EOF
	}

	for i, v := range s.buf.Data[:n] {
		dst[i] = float32(v) * s.scale
	}

	// go-audio reports the end of data as a short read with a nil error.
	if n < len(dst) && err == nil {
		return n, io.EOF
	}

	return n, err
}
