// SPDX-License-Identifier: EPL-2.0

package clip

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ik5/audloop/audio"
	"github.com/ik5/audloop/formats/wav"
)

func waitLoaded(t *testing.T, h Handle) LoadState {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if s := h.State(); s.Done() {
			return s
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("load did not finish, state = %v", h.State())
	return Unloaded
}

func writeWAV(t *testing.T, sampleRate, channels int, samples []int16) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clip.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := wav.WriteWAV16(f, sampleRate, channels, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}
	return path
}

func TestData_LoadFile(t *testing.T) {
	t.Parallel()

	// 0.5s of stereo at 8kHz
	path := writeWAV(t, 8000, 2, make([]int16, 8000))

	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})

	data, err := NewFile(path, reg, Format{})
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}

	if data.State() != Unloaded {
		t.Fatalf("State() = %v, want %v", data.State(), Unloaded)
	}

	data.Load()
	if s := waitLoaded(t, data); s != Loaded {
		t.Fatalf("State() = %v, want %v (err %v)", s, Loaded, data.Err())
	}

	if got := data.Length(); !approx(got, 0.5) {
		t.Errorf("Length() = %v, want 0.5", got)
	}
	if data.Channels() != 2 || data.SampleRate() != 8000 || data.Frames() != 4000 {
		t.Errorf("format = %d ch, %d Hz, %d frames", data.Channels(), data.SampleRate(), data.Frames())
	}
}

func TestData_LoadConvertsFormat(t *testing.T) {
	t.Parallel()

	path := writeWAV(t, 8000, 2, make([]int16, 16000))

	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})

	data, err := NewFile(path, reg, Format{SampleRate: 16000, Mono: true})
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}

	data.Load()
	if s := waitLoaded(t, data); s != Loaded {
		t.Fatalf("State() = %v, want %v (err %v)", s, Loaded, data.Err())
	}

	if data.Channels() != 1 || data.SampleRate() != 16000 {
		t.Errorf("format = %d ch, %d Hz, want 1 ch, 16000 Hz", data.Channels(), data.SampleRate())
	}
	if got := data.Length(); got < 0.999 || got > 1.001 {
		t.Errorf("Length() = %v, want ≈1", got)
	}
}

func TestNewFile_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := NewFile("music/theme.flac", audio.NewRegistry(), Format{})
	if !errors.Is(err, audio.ErrUnknownFormat) {
		t.Errorf("NewFile() error = %v, want %v", err, audio.ErrUnknownFormat)
	}
}

func TestData_LoadFailure(t *testing.T) {
	t.Parallel()

	missing := errors.New("missing asset")
	data, err := NewData(func() (io.ReadCloser, error) {
		return nil, missing
	}, wav.Decoder{}, Format{})
	if err != nil {
		t.Fatal(err)
	}

	data.Load()
	if s := waitLoaded(t, data); s != Failed {
		t.Fatalf("State() = %v, want %v", s, Failed)
	}

	if !errors.Is(data.Err(), missing) {
		t.Errorf("Err() = %v, want %v", data.Err(), missing)
	}
	if data.Length() != 0 || data.Samples() != nil {
		t.Error("failed load exposes data")
	}
}

func TestData_LoadDecodeFailure(t *testing.T) {
	t.Parallel()

	data, err := NewData(func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader([]byte("not a wav file at all"))), nil
	}, wav.Decoder{}, Format{})
	if err != nil {
		t.Fatal(err)
	}

	data.Load()
	if s := waitLoaded(t, data); s != Failed {
		t.Fatalf("State() = %v, want %v", s, Failed)
	}
}

func TestData_UnloadDiscardsInflightLoad(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	opened := make(chan struct{})
	data, err := NewData(func() (io.ReadCloser, error) {
		close(opened)
		<-release
		return nil, errors.New("stale load")
	}, wav.Decoder{}, Format{})
	if err != nil {
		t.Fatal(err)
	}

	data.Load()
	<-opened
	data.Unload()
	close(release)

	// the stale failure must never surface
	time.Sleep(20 * time.Millisecond)
	if s := data.State(); s != Unloaded {
		t.Errorf("State() = %v, want %v", s, Unloaded)
	}
	if data.Err() != nil {
		t.Errorf("Err() = %v, want nil", data.Err())
	}
}

func TestData_LoadIsIdempotent(t *testing.T) {
	t.Parallel()

	opens := 0
	block := make(chan struct{})
	data, err := NewData(func() (io.ReadCloser, error) {
		opens++
		<-block
		return nil, errors.New("done")
	}, wav.Decoder{}, Format{})
	if err != nil {
		t.Fatal(err)
	}

	data.Load()
	data.Load()
	data.Load()
	close(block)
	waitLoaded(t, data)

	if opens != 1 {
		t.Errorf("opener called %d times, want 1", opens)
	}
}

func TestNewMemory(t *testing.T) {
	t.Parallel()

	data, err := NewMemory(make([]float32, 2*44100), 44100, 2)
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}

	if data.State() != Loaded {
		t.Fatalf("State() = %v, want %v", data.State(), Loaded)
	}
	if got := data.Length(); !approx(got, 1) {
		t.Errorf("Length() = %v, want 1", got)
	}

	data.Unload()
	if data.State() != Unloaded {
		t.Errorf("State() after Unload = %v, want %v", data.State(), Unloaded)
	}

	data.Load()
	if data.State() != Loaded || data.Frames() != 44100 {
		t.Errorf("reload = %v with %d frames", data.State(), data.Frames())
	}

	if _, err := NewMemory(nil, 0, 2); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("NewMemory(rate 0) error = %v, want %v", err, ErrInvalidFormat)
	}
}
