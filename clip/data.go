// SPDX-License-Identifier: EPL-2.0

package clip

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ik5/audloop/audio"
)

const defaultBufSize = 4096

// Format is the shape decoded data is converted to while loading.
// A zero SampleRate keeps the rate of the file. Mono folds every channel into one.
type Format struct {
	SampleRate int
	Mono       bool
}

// Opener returns a fresh reader over the encoded asset for every load.
type Opener func() (io.ReadCloser, error)

// Data is a Handle holding decoded, interleaved float32 PCM.
//
// Loading happens on its own goroutine. Unloading while a load is still in
// flight discards that load's result when it arrives.
type Data struct {
	open    Opener
	decoder audio.Decoder
	format  Format

	mu       sync.Mutex
	state    LoadState
	gen      uint64
	resident bool
	pcm      []float32
	rate     int
	channels int
	err      error
}

// NewData returns an unloaded asset decoded with dec from whatever open returns.
func NewData(open Opener, dec audio.Decoder, f Format) (*Data, error) {
	if f.SampleRate < 0 {
		return nil, ErrInvalidFormat
	}

	return &Data{
		open:    open,
		decoder: dec,
		format:  f,
	}, nil
}

// NewFile returns an unloaded asset for path, picking the decoder by extension.
func NewFile(path string, reg *audio.Registry, f Format) (*Data, error) {
	dec, err := reg.ForPath(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return NewData(func() (io.ReadCloser, error) {
		return os.Open(path)
	}, dec, f)
}

// NewMemory returns an asset over samples that are already decoded.
// It is always loaded; Unload only changes the reported state.
func NewMemory(samples []float32, sampleRate, channels int) (*Data, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, ErrInvalidFormat
	}

	return &Data{
		state:    Loaded,
		resident: true,
		pcm:      samples,
		rate:     sampleRate,
		channels: channels,
	}, nil
}

func (d *Data) Load() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == Loading || d.state == Loaded {
		return
	}

	if d.resident {
		d.state = Loaded
		return
	}

	d.state = Loading
	d.err = nil
	d.gen++
	go d.decode(d.gen)
}

func (d *Data) Unload() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	d.state = Unloaded
	d.err = nil
	if !d.resident {
		d.pcm = nil
	}
}

func (d *Data) State() LoadState {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.state
}

func (d *Data) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.err
}

// Length is the unscaled duration in seconds, or 0 when not loaded.
func (d *Data) Length() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != Loaded || d.rate == 0 {
		return 0
	}
	return float64(d.frames()) / float64(d.rate)
}

// Samples returns the decoded PCM. Callers must not modify it.
func (d *Data) Samples() []float32 {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != Loaded {
		return nil
	}
	return d.pcm
}

func (d *Data) SampleRate() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.rate
}

func (d *Data) Channels() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.channels
}

func (d *Data) Frames() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	return int64(d.frames())
}

func (d *Data) frames() int {
	if d.channels == 0 {
		return 0
	}
	return len(d.pcm) / d.channels
}

func (d *Data) decode(gen uint64) {
	pcm, rate, channels, err := d.read()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.gen != gen {
		return
	}

	if err != nil {
		d.state = Failed
		d.err = err
		return
	}

	d.pcm = pcm
	d.rate = rate
	d.channels = channels
	d.state = Loaded
}

func (d *Data) read() ([]float32, int, int, error) {
	r, err := d.open()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("open: %w", err)
	}
	defer r.Close()

	src, err := d.decoder.Decode(r)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decode: %w", err)
	}
	defer src.Close()

	if d.format.SampleRate > 0 && src.SampleRate() != d.format.SampleRate {
		src = audio.NewResampler(src, d.format.SampleRate)
	}
	if d.format.Mono && src.Channels() > 1 {
		src = audio.NewMonoMixer(src)
	}

	pcm, err := audio.ReadAll(src, defaultBufSize)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("read: %w", err)
	}

	return pcm, src.SampleRate(), src.Channels(), nil
}
