// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"slices"
	"sync"

	"github.com/ik5/audloop/clip"
	"github.com/ik5/audloop/player"
	"github.com/ik5/audloop/utils"
	"github.com/rs/zerolog"
)

// PCM is decoded audio a voice can read. clip.Data implements it.
type PCM interface {
	Samples() []float32
	SampleRate() int
	Channels() int
}

type Config struct {
	SampleRate int
	Channels   int
	Logger     zerolog.Logger
}

func DefaultConfig() Config {
	return Config{
		SampleRate: 44100,
		Channels:   2,
		Logger:     zerolog.Nop(),
	}
}

// Device is a software mixer and audio clock. It implements player.Backend.
//
// The clock only moves when audio is pulled through Render or Read, so
// scheduled starts and stops land on exact output frames. Device is safe
// to program from one goroutine while another renders.
type Device struct {
	rate     int
	channels int
	log      zerolog.Logger

	mu       sync.Mutex
	frame    int64
	voices   []*voice
	oneShots []*voice
	buf      []float32
}

var _ player.Backend = (*Device)(nil)

func New(cfg Config) (*Device, error) {
	if cfg.SampleRate <= 0 || cfg.Channels <= 0 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidConfig, cfg.SampleRate, cfg.Channels)
	}

	return &Device{
		rate:     cfg.SampleRate,
		channels: cfg.Channels,
		log:      cfg.Logger.With().Str("component", "mixer").Logger(),
	}, nil
}

func (d *Device) SampleRate() int { return d.rate }
func (d *Device) Channels() int   { return d.channels }

// Now is the time of the next frame to be rendered, in seconds.
func (d *Device) Now() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	return utils.FramesToSeconds(d.frame, d.rate)
}

// NewSource returns a stopped voice mixed into every render.
func (d *Device) NewSource() player.Source {
	d.mu.Lock()
	defer d.mu.Unlock()

	v := newVoice(d)
	d.voices = append(d.voices, v)
	return v
}

// PlayOneShot plays h once at the given volume and pitch. A handle that is
// still loading starts as soon as its samples are available.
func (d *Device) PlayOneShot(h clip.Handle, volume, pitch float64) error {
	if _, ok := h.(PCM); !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedHandle, h)
	}
	if h.State() == clip.Failed {
		if err := h.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrHandleFailed, err)
		}
		return ErrHandleFailed
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	v := newVoice(d)
	v.handle = h
	v.volume = volume
	v.pitch = pitch
	v.state = playing
	v.oneShot = true
	d.oneShots = append(d.oneShots, v)
	return nil
}

// OneShots is the number of one-shot voices still playing.
func (d *Device) OneShots() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.oneShots)
}

// Render mixes the next len(dst)/Channels() frames into dst, interleaved,
// and advances the clock by that many frames.
func (d *Device) Render(dst []float32) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.render(dst)
}

func (d *Device) render(dst []float32) {
	frames := len(dst) / d.channels
	clear(dst)

	for f := range frames {
		out := dst[f*d.channels : (f+1)*d.channels]
		now := d.frame + int64(f)
		for _, v := range d.voices {
			v.mix(out, now)
		}
		for _, v := range d.oneShots {
			v.mix(out, now)
		}
	}
	d.frame += int64(frames)

	d.oneShots = slices.DeleteFunc(d.oneShots, func(v *voice) bool {
		if v.handle.State() == clip.Failed {
			d.log.Warn().Err(v.handle.Err()).Msg("dropping one-shot that failed to load")
			return true
		}
		return v.state == stopped
	})
}

// Read renders float32 little-endian interleaved frames into p, the layout
// oto's FormatFloat32LE expects. Only whole frames are written; p shorter
// than one frame returns io.ErrShortBuffer.
func (d *Device) Read(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(p) == 0 {
		return 0, nil
	}
	frameBytes := 4 * d.channels
	samples := len(p) / frameBytes * d.channels
	if samples == 0 {
		return 0, io.ErrShortBuffer
	}

	if cap(d.buf) < samples {
		d.buf = make([]float32, samples)
	}
	d.buf = d.buf[:samples]
	d.render(d.buf)

	for i, s := range d.buf {
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(s))
	}
	return samples * 4, nil
}
