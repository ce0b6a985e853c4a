// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/audloop/utils"
)

// samples per encoder write
const chunkSize = 8192

// WriteWAV16 writes interleaved 16-bit PCM samples as a WAV file.
// The header sizes are patched on close, so w must be seekable.
func WriteWAV16(w io.WriteSeeker, sampleRate, channels int, samples []int16) error {
	return encode16(w, sampleRate, channels, len(samples), func(i int) int {
		return int(samples[i])
	})
}

// WriteFloat writes interleaved float32 samples in [-1, 1] as 16-bit PCM WAV.
// Samples outside that range are clamped.
func WriteFloat(w io.WriteSeeker, sampleRate, channels int, samples []float32) error {
	return encode16(w, sampleRate, channels, len(samples), func(i int) int {
		return int(utils.Float32ToInt16(samples[i]))
	})
}

func encode16(w io.WriteSeeker, sampleRate, channels, count int, at func(i int) int) error {
	if channels <= 0 {
		return ErrInvalidChannels
	}
	if count%channels != 0 {
		return ErrInvalidSampleCount
	}

	enc := wav.NewEncoder(w, sampleRate, 16, channels, formatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           make([]int, 0, min(count, chunkSize)),
		SourceBitDepth: 16,
	}

	// keep every chunk frame aligned
	step := chunkSize - chunkSize%channels
	for start := 0; start < count; start += step {
		end := min(start+step, count)

		buf.Data = buf.Data[:0]
		for i := start; i < end; i++ {
			buf.Data = append(buf.Data, at(i))
		}

		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
