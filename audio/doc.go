// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM stream layer used to turn encoded files into
// the decoded clip data the player schedules.
//
// It contains:
//   - Source, the interleaved float32 stream every decoder returns
//   - Registry, mapping format keys and file extensions to decoders
//   - Resampler, converting a stream to the playback device rate
//   - MonoMixer, folding a stream down to one channel
//   - IntPCM, adapting the go-audio integer decoders (WAV, AIFF) to Source
//   - ReadAll, draining a stream into memory
//
// # Loading a clip into memory
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//
//	dec, err := reg.ForPath("music/theme.wav")
//	src, err := dec.Decode(file)
//	src = audio.NewResampler(src, 48000)
//	pcm, err := audio.ReadAll(src, 4096)
//
// # Sample Format
//
// Samples are float32 in the range [-1.0, 1.0], interleaved by channel.
// ReadSamples returns io.EOF once the stream is finished; ReadAll consumes
// that io.EOF and reports a nil error for a complete read.
package audio
