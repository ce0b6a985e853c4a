// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"math"

	"github.com/ik5/audloop/clip"
	"github.com/ik5/audloop/utils"
)

type voiceState int

const (
	stopped voiceState = iota
	scheduled
	playing
)

// voice is one playback unit of a Device. Every exported method takes the
// device lock; mix runs with it held.
type voice struct {
	dev *Device

	handle  clip.Handle
	pitch   float64
	loop    bool
	volume  float64
	oneShot bool

	state voiceState
	pos   float64 // in clip frames
	// absolute device frames, -1 when unset
	startAt  int64
	stopAt   int64
	paused   bool
	pausedAt int64
}

func newVoice(d *Device) *voice {
	return &voice{dev: d, pitch: 1, startAt: -1, stopAt: -1}
}

func (v *voice) SetClip(h clip.Handle) {
	v.dev.mu.Lock()
	defer v.dev.mu.Unlock()

	if h != nil {
		if _, ok := h.(PCM); !ok {
			v.dev.log.Warn().Str("handle", fmt.Sprintf("%T", h)).Msg("handle has no PCM, source stays silent")
		}
	}
	v.handle = h
	v.pos = 0
}

func (v *voice) SetPitch(pitch float64) {
	v.dev.mu.Lock()
	defer v.dev.mu.Unlock()

	v.pitch = pitch
}

func (v *voice) SetLoop(loop bool) {
	v.dev.mu.Lock()
	defer v.dev.mu.Unlock()

	v.loop = loop
}

func (v *voice) SetVolume(volume float64) {
	v.dev.mu.Lock()
	defer v.dev.mu.Unlock()

	v.volume = volume
}

// Seek moves to seconds into the clip, at the clip's own rate.
func (v *voice) Seek(seconds float64) {
	v.dev.mu.Lock()
	defer v.dev.mu.Unlock()

	pcm, ok := v.handle.(PCM)
	if !ok || pcm.SampleRate() <= 0 {
		v.pos = 0
		return
	}
	v.pos = max(0, seconds*float64(pcm.SampleRate()))
}

func (v *voice) Play() {
	v.dev.mu.Lock()
	defer v.dev.mu.Unlock()

	v.state = playing
	v.startAt = -1
}

// PlayAt starts the voice on the frame nearest t. A time already rendered
// starts it on the next frame.
func (v *voice) PlayAt(t float64) {
	v.dev.mu.Lock()
	defer v.dev.mu.Unlock()

	v.state = scheduled
	v.startAt = max(utils.SecondsToFrames(t, v.dev.rate), v.dev.frame)
}

func (v *voice) StopAt(t float64) {
	v.dev.mu.Lock()
	defer v.dev.mu.Unlock()

	v.stopAt = max(utils.SecondsToFrames(t, v.dev.rate), v.dev.frame)
}

func (v *voice) Stop() {
	v.dev.mu.Lock()
	defer v.dev.mu.Unlock()

	v.state = stopped
	v.startAt = -1
	v.stopAt = -1
	v.paused = false
}

func (v *voice) Pause() {
	v.dev.mu.Lock()
	defer v.dev.mu.Unlock()

	if v.paused {
		return
	}
	v.paused = true
	v.pausedAt = v.dev.frame
}

// Resume continues playback and pushes pending start and stop frames back
// by the time spent paused.
func (v *voice) Resume() {
	v.dev.mu.Lock()
	defer v.dev.mu.Unlock()

	if !v.paused {
		return
	}
	v.paused = false

	shift := v.dev.frame - v.pausedAt
	if v.startAt >= 0 {
		v.startAt += shift
	}
	if v.stopAt >= 0 {
		v.stopAt += shift
	}
}

// mix adds the voice's output for device frame now into out.
func (v *voice) mix(out []float32, now int64) {
	if v.paused {
		return
	}

	if v.stopAt >= 0 && now >= v.stopAt {
		v.state = stopped
		v.stopAt = -1
		v.startAt = -1
	}
	if v.state == scheduled && now >= v.startAt {
		v.state = playing
		v.startAt = -1
	}
	if v.state != playing || v.handle == nil {
		return
	}

	pcm, ok := v.handle.(PCM)
	if !ok {
		return
	}
	samples := pcm.Samples()
	channels := pcm.Channels()
	if len(samples) == 0 || channels <= 0 {
		// not loaded yet; one-shots wait for their data
		return
	}
	frames := len(samples) / channels

	if v.pos >= float64(frames) {
		if !v.loop {
			v.state = stopped
			return
		}
		v.pos = math.Mod(v.pos, float64(frames))
	}

	i := int(v.pos)
	x := float32(v.pos - float64(i))
	at := func(n, c int) float32 {
		switch {
		case v.loop:
			n = ((n % frames) + frames) % frames
		case n < 0:
			n = 0
		case n >= frames:
			return 0
		}
		return samples[n*channels+c]
	}

	gain := float32(v.volume)
	for c := range out {
		src := min(c, channels-1)
		s := utils.CubicInterpolate(at(i-1, src), at(i, src), at(i+1, src), at(i+2, src), x)
		out[c] += s * gain
	}

	v.pos += math.Abs(v.pitch) * float64(pcm.SampleRate()) / float64(v.dev.rate)
}
