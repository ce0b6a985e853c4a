// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes Audio Interchange File Format files through
// github.com/go-audio/aiff.
//
// Uncompressed AIFF at 8, 16, 24 or 32 bits is supported, with any channel
// count and sample rate. AIFF-C compressed data is not.
//
//	f, _ := os.Open("sting.aif")
//	src, err := aiff.Decoder{}.Decode(f)
//
// The source reports its length through audio.FrameCounter using the
// frame count from the COMM chunk.
package aiff
