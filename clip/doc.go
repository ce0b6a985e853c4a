// SPDX-License-Identifier: EPL-2.0

// Package clip describes the music the player schedules.
//
// A Clip pairs a Handle to the raw audio data with the parameters that shape
// playback: loop kind, volume, pitch and, for smart loops, the main region.
// All timing the scheduler needs is derived from those fields:
//
//	Intro  = Start / Pitch
//	Main   = (End - Start) / Pitch
//	Outro  = (length - End) / Pitch
//	Length = length / Pitch
//
// Intro and Main only need the descriptor. Length and Outro need the raw
// length of the asset and return ErrNotLoaded until the handle is Loaded.
//
// # Handles
//
// Data is the stock Handle: it decodes an encoded asset on a goroutine into
// float32 PCM, optionally resampled to the playback rate.
//
//	reg := audloop.NewRegistry()
//	data, err := clip.NewFile("music/theme.ogg", reg, clip.Format{SampleRate: 48000})
//	theme := clip.NewSmart("theme", data, 4.0, 52.0)
//	data.Load() // returns at once; poll data.State()
package clip
