// SPDX-License-Identifier: EPL-2.0

package audloop

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/ik5/audloop/audio"
	"github.com/ik5/audloop/clip"
	"github.com/ik5/audloop/formats/wav"
	"github.com/ik5/audloop/internal/audiotest"
)

func wavBytes(t *testing.T, sampleRate, channels int, samples []int16) []byte {
	t.Helper()

	var f audiotest.MemFile
	if err := wav.WriteWAV16(&f, sampleRate, channels, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}
	return f.Bytes()
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func waitDone(t *testing.T, h clip.Handle) clip.LoadState {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if s := h.State(); s.Done() {
			return s
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("load did not finish, state = %v", h.State())
	return clip.Unloaded
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	want := []string{"aif", "aiff", "mp3", "oga", "ogg", "wav", "wave"}
	if got := NewRegistry().Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  []byte
		want    string
		wantErr bool
	}{
		{"wav", wavBytes(t, 8000, 1, make([]int16, 64)), "wav", false},
		{"mp3 with id3", append([]byte("ID3\x03\x00\x00\x00\x00\x00\x00"), make([]byte, 32)...), "mp3", false},
		{"png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), "", true},
		{"text", []byte("just some words, not audio at all"), "", true},
		{"empty", nil, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DetectFormat(tt.header)
			if tt.wantErr {
				if !errors.Is(err, audio.ErrUnknownFormat) {
					t.Errorf("DetectFormat() error = %v, want %v", err, audio.ErrUnknownFormat)
				}
				return
			}
			if err != nil {
				t.Fatalf("DetectFormat() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpenClip(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "theme.wav", wavBytes(t, 8000, 2, make([]int16, 2*4000)))

	c, err := OpenClip(nil, path, clip.Loop, clip.Format{})
	if err != nil {
		t.Fatalf("OpenClip() error = %v", err)
	}
	if c.Name != "theme" {
		t.Errorf("Name = %q, want %q", c.Name, "theme")
	}
	if c.Kind != clip.Loop {
		t.Errorf("Kind = %v, want %v", c.Kind, clip.Loop)
	}
	if s := c.Handle.State(); s != clip.Unloaded {
		t.Errorf("State() = %v, want %v", s, clip.Unloaded)
	}

	c.Handle.Load()
	if s := waitDone(t, c.Handle); s != clip.Loaded {
		t.Fatalf("State() = %v, want %v (err %v)", s, clip.Loaded, c.Handle.Err())
	}
	if got, err := c.Length(); err != nil || got != 0.5 {
		t.Errorf("Length() = %v, %v, want 0.5", got, err)
	}
}

func TestOpenClip_SniffsHeader(t *testing.T) {
	t.Parallel()

	// wav content behind the wrong extension
	path := writeFile(t, "mislabeled.mp3", wavBytes(t, 8000, 1, make([]int16, 800)))

	c, err := OpenClip(NewRegistry(), path, clip.Once, clip.Format{})
	if err != nil {
		t.Fatalf("OpenClip() error = %v", err)
	}
	c.Handle.Load()
	if s := waitDone(t, c.Handle); s != clip.Loaded {
		t.Fatalf("State() = %v, want %v (err %v)", s, clip.Loaded, c.Handle.Err())
	}
}

func TestOpenClip_FallsBackToExtension(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "noise.wav", []byte("not a riff file"))

	c, err := OpenClip(nil, path, clip.Loop, clip.Format{})
	if err != nil {
		t.Fatalf("OpenClip() error = %v", err)
	}
	c.Handle.Load()
	if s := waitDone(t, c.Handle); s != clip.Failed {
		t.Fatalf("State() = %v, want %v", s, clip.Failed)
	}
	if !errors.Is(c.Handle.Err(), wav.ErrNotWavFile) {
		t.Errorf("Err() = %v, want %v", c.Handle.Err(), wav.ErrNotWavFile)
	}
}

func TestOpenClip_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	unknown := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(unknown, []byte("plain text"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := OpenClip(nil, unknown, clip.Loop, clip.Format{}); !errors.Is(err, audio.ErrUnknownFormat) {
		t.Errorf("OpenClip(unknown) error = %v, want %v", err, audio.ErrUnknownFormat)
	}
	if _, err := OpenClip(nil, filepath.Join(dir, "missing.wav"), clip.Loop, clip.Format{}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("OpenClip(missing) error = %v, want %v", err, os.ErrNotExist)
	}

	valid := writeFile(t, "valid.wav", wavBytes(t, 8000, 1, make([]int16, 8)))
	if _, err := OpenClip(nil, valid, clip.Loop, clip.Format{SampleRate: -1}); !errors.Is(err, clip.ErrInvalidFormat) {
		t.Errorf("OpenClip(negative rate) error = %v, want %v", err, clip.ErrInvalidFormat)
	}
}

func TestOpenSmart(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "boss.wav", wavBytes(t, 1000, 1, make([]int16, 3000)))

	c, err := OpenSmart(nil, path, 0.5, 2.5, clip.Format{})
	if err != nil {
		t.Fatalf("OpenSmart() error = %v", err)
	}
	if c.Kind != clip.Smart || c.Start != 0.5 || c.End != 2.5 {
		t.Errorf("OpenSmart() = %v [%v, %v], want smart [0.5, 2.5]", c.Kind, c.Start, c.End)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if got := c.Main(); got != 2 {
		t.Errorf("Main() = %v, want 2", got)
	}
}
