// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audloop/utils"
)

// Resampler streams from src to a target sample rate using cubic interpolation.
// Works on interleaved samples and preserves the channel count. When
// downsampling, incoming frames pass a one-pole low-pass filter first.
type Resampler struct {
	src      Source
	rate     int
	step     float64 // source frames consumed per output frame
	channels int

	// window[1] is the frame at pos, window[0] the one before it,
	// window[2] and window[3] the two after it.
	window [4][]float32
	valid  [4]bool
	pos    float64
	primed bool

	in      []float32
	inHead  int
	inLen   int
	drained bool

	lowpass []float32
	filter  bool
	seeded  bool
	alpha   float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	bufSize := src.BufSize()
	if bufSize < channels {
		bufSize = 4096
	}
	bufSize -= bufSize % channels

	r := &Resampler{
		src:      src,
		rate:     dstRate,
		step:     step,
		channels: channels,
		in:       make([]float32, bufSize),
		lowpass:  make([]float32, channels),
		filter:   step > 1.0,
		alpha:    0.5,
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Frames estimates the output length when the wrapped source knows its own.
func (r *Resampler) Frames() int64 {
	fc, ok := r.src.(FrameCounter)
	if !ok || fc.Frames() < 0 {
		return -1
	}
	return int64(float64(fc.Frames())/r.step + 0.5)
}

// ReadSamples produces dst samples at the target rate.
// dst length must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		r.primed = true
		for range 3 {
			if err := r.advance(); err != nil {
				return 0, err
			}
		}
	}

	written := 0
	for written < len(dst) {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written, err
			}
		}

		if !r.valid[1] {
			return written, io.EOF
		}

		x := float32(r.pos)
		for c := range r.channels {
			y1 := r.window[1][c]
			y0, y2 := y1, y1
			if r.valid[0] {
				y0 = r.window[0][c]
			}
			if r.valid[2] {
				y2 = r.window[2][c]
			}
			y3 := y2
			if r.valid[3] {
				y3 = r.window[3][c]
			}
			dst[written+c] = utils.CubicInterpolate(y0, y1, y2, y3, x)
		}

		written += r.channels
		r.pos += r.step
	}

	return written, nil
}

// advance shifts the window by one frame and pulls the next source frame into window[3].
func (r *Resampler) advance() error {
	head := r.window[0]
	copy(r.window[:3], r.window[1:])
	r.window[3] = head
	copy(r.valid[:3], r.valid[1:])
	r.valid[3] = false

	ok, err := r.nextFrame(r.window[3])
	if err != nil {
		return err
	}
	r.valid[3] = ok

	if ok && r.filter {
		if !r.seeded {
			copy(r.lowpass, r.window[3])
			r.seeded = true
		}
		for c := range r.channels {
			v := r.alpha*r.window[3][c] + (1-r.alpha)*r.lowpass[c]
			r.window[3][c] = v
			r.lowpass[c] = v
		}
	}

	return nil
}

func (r *Resampler) nextFrame(frame []float32) (bool, error) {
	for r.inLen-r.inHead < r.channels {
		if r.drained {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.in)
		r.inHead, r.inLen = 0, n-n%r.channels
		if err == io.EOF {
			r.drained = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		}
	}

	copy(frame, r.in[r.inHead:r.inHead+r.channels])
	r.inHead += r.channels
	return true, nil
}
