// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams through
// github.com/jfreymuth/oggvorbis.
//
// Vorbis decodes straight to float32, so samples pass through untouched.
// Channel count and rate come from the identification header:
//
//	src, err := vorbis.Decoder{}.Decode(f)
//
// Seekable inputs let oggvorbis find the last granule position; the source
// then reports its length through audio.FrameCounter.
package vorbis
