// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audloop/audio"
)

// mockOggReader serves interleaved float samples like oggvorbis.Reader.
type mockOggReader struct {
	sampleRate int
	channels   int
	samples    []float32
	length     int64
	lastLen    int
}

func (m *mockOggReader) SampleRate() int { return m.sampleRate }
func (m *mockOggReader) Channels() int   { return m.channels }
func (m *mockOggReader) Length() int64   { return m.length }

func (m *mockOggReader) Read(p []float32) (int, error) {
	m.lastLen = len(p)
	if len(m.samples) == 0 {
		return 0, io.EOF
	}
	n := copy(p, m.samples)
	m.samples = m.samples[n:]
	return n, nil
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	in := []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3}
	src := &source{dec: &mockOggReader{sampleRate: 48000, channels: 2, samples: in}}

	pcm, err := audio.ReadAll(src, 4)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(pcm) != len(in) {
		t.Fatalf("read %d samples, want %d", len(pcm), len(in))
	}
	for i := range in {
		if pcm[i] != in[i] {
			t.Errorf("pcm[%d] = %v, want %v", i, pcm[i], in[i])
		}
	}
}

func TestSource_FrameAlignedReads(t *testing.T) {
	t.Parallel()

	m := &mockOggReader{sampleRate: 44100, channels: 2, samples: make([]float32, 20)}
	src := &source{dec: m}

	if _, err := src.ReadSamples(make([]float32, 7)); err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if m.lastLen != 6 {
		t.Errorf("decoder saw %d values, want 6", m.lastLen)
	}

	if n, err := src.ReadSamples(make([]float32, 1)); n != 0 || err != nil {
		t.Errorf("ReadSamples(1) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestSource_Frames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		length int64
		want   int64
	}{
		{"known", 96000, 96000},
		{"unknown", 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := &source{dec: &mockOggReader{sampleRate: 48000, channels: 1, length: tt.length}}
			if got := src.Frames(); got != tt.want {
				t.Errorf("Frames() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"text", []byte("This is not Ogg Vorbis data")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrNotVorbisFile) {
				t.Errorf("Decode() error = %v, want %v", err, ErrNotVorbisFile)
			}
		})
	}
}
