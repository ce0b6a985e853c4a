// SPDX-License-Identifier: EPL-2.0

// Package audloop plays game music with gapless smart loops and crossfades.
//
// A smart clip has an intro, a main section that repeats and an outro that is
// only heard when the music is stopped mid-file. The player keeps two sources
// per track and arms the idle one at the exact audio clock time the current
// main section ends, so the loop point never depends on frame timing.
//
// # Packages
//
//   - clip: the Clip descriptor, load states and the Data handle
//   - player: tracks, fades, pending requests and the Input facade
//   - mixer: a software backend rendering float32 frames, usable with oto
//   - audio: decoder sources, resampling and mono folding
//   - formats/wav, formats/mp3, formats/vorbis, formats/aiff: decoders
//
// # Quick Start
//
//	reg := audloop.NewRegistry()
//	theme, err := audloop.OpenSmart(reg, "music/theme.ogg", 4.0, 52.0, clip.Format{SampleRate: 48000})
//	if err != nil {
//		return err
//	}
//
//	dev, _ := mixer.New(mixer.DefaultConfig())
//	p, _ := player.New(dev, player.DefaultConfig())
//	_ = p.Play(theme, 1.5, player.CrossFade)
//
//	for range ticker.C {
//		_ = p.Update(1.0 / 60)
//	}
//
// The device is an io.Reader of float32LE frames; hand it to an oto player for
// live output, or Render it into a buffer and write it with wav.WriteFloat.
//
// # Formats
//
// NewRegistry knows WAV, AIFF, MP3 and Ogg Vorbis. OpenClip sniffs the file
// header before trusting the extension, and names the clip after its title
// tag when the file carries one.
package audloop
