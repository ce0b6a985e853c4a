// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes RIFF/WAVE files using github.com/go-audio/wav.
//
// # Decoding
//
// Decoder accepts signed integer PCM at 16, 24 or 32 bits, any channel count
// and any sample rate. Samples come out as float32 in [-1, 1]:
//
//	f, _ := os.Open("theme.wav")
//	src, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	pcm, err := audio.ReadAll(src, src.BufSize())
//
// The returned source implements audio.FrameCounter, so audio.ReadAll can
// size its buffer once. go-audio seeks between chunks; a reader without a
// Seek method is read into memory first.
//
// # Writing
//
// WriteWAV16 and WriteFloat produce 16-bit PCM files. The writer patches the
// header sizes on close, so the destination must be an io.WriteSeeker:
//
//	out, _ := os.Create("render.wav")
//	defer out.Close()
//	err := wav.WriteFloat(out, 44100, 2, mixed)
//
// # Errors
//
//   - ErrNotWavFile: the input has no RIFF/WAVE header or fmt chunk
//   - ErrOnlyPCMSupported: compressed, float or 8-bit data
//   - ErrUnsupportedWavLayout, ErrUnsupportedWavChunks: malformed chunk layout
//   - ErrInvalidChannels, ErrInvalidSampleCount: bad writer arguments
package wav
