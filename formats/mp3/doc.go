// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio through
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit stereo, so the source reports two channels
// even for mono files. Feed it through audio.NewMonoMixer when a single
// channel is wanted:
//
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	mono := audio.NewMonoMixer(src)
//
// When the input is seekable go-mp3 scans the frames up front and the
// source reports its length through audio.FrameCounter.
package mp3
