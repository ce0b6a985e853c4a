// SPDX-License-Identifier: EPL-2.0

// Package mixer is a software playback device for the player package.
//
// A Device mixes any number of voices into interleaved float32 frames and
// keeps the audio clock the player schedules against. The clock is the
// number of frames rendered so far divided by the sample rate, so a start or
// stop programmed for time t lands on frame round(t * rate) exactly.
//
// Voices read clip.Data (or anything implementing PCM), resample with cubic
// interpolation when the clip rate or pitch differs from the device, and map
// clip channels onto device channels by index, repeating the last one.
//
// Render pulls frames directly; Read produces float32 little-endian bytes
// for an oto player:
//
//	dev, _ := mixer.New(mixer.DefaultConfig())
//	p, _ := player.New(dev, player.DefaultConfig())
//	otoPlayer := otoCtx.NewPlayer(dev)
//	otoPlayer.Play()
package mixer
