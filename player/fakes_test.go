// SPDX-License-Identifier: EPL-2.0

package player

import (
	"errors"

	"github.com/ik5/audloop/clip"
	"github.com/ik5/audloop/internal/audiotest"
)

// fakeSource records how the track programs it.
type fakeSource struct {
	handle  clip.Handle
	pitch   float64
	loop    bool
	volume  float64
	playing bool
	paused  bool

	seeks   []float64
	starts  []float64 // PlayAt times; Play records -1
	stops   []float64 // StopAt times
	pauses  int
	resumes int
}

func (s *fakeSource) SetClip(h clip.Handle)    { s.handle = h }
func (s *fakeSource) SetPitch(pitch float64)   { s.pitch = pitch }
func (s *fakeSource) SetLoop(loop bool)        { s.loop = loop }
func (s *fakeSource) SetVolume(volume float64) { s.volume = volume }
func (s *fakeSource) Seek(seconds float64)     { s.seeks = append(s.seeks, seconds) }

func (s *fakeSource) Play() {
	s.playing = true
	s.starts = append(s.starts, -1)
}

func (s *fakeSource) PlayAt(t float64) {
	s.playing = true
	s.starts = append(s.starts, t)
}

func (s *fakeSource) StopAt(t float64) { s.stops = append(s.stops, t) }

func (s *fakeSource) Stop() {
	s.playing = false
	s.paused = false
}

func (s *fakeSource) Pause() {
	s.paused = true
	s.pauses++
}

func (s *fakeSource) Resume() {
	s.paused = false
	s.resumes++
}

type oneShot struct {
	handle clip.Handle
	volume float64
	pitch  float64
}

type fakeBackend struct {
	*audiotest.Clock
	sources  []*fakeSource
	oneShots []oneShot
	err      error
}

var errBackend = errors.New("backend failure")

func newFakeBackend() *fakeBackend {
	return &fakeBackend{Clock: audiotest.NewClock(100)}
}

func (b *fakeBackend) NewSource() Source {
	s := &fakeSource{}
	b.sources = append(b.sources, s)
	return s
}

func (b *fakeBackend) PlayOneShot(h clip.Handle, volume, pitch float64) error {
	if b.err != nil {
		return b.err
	}
	b.oneShots = append(b.oneShots, oneShot{h, volume, pitch})
	return nil
}

// tick advances the clock and ticks the track by dt.
func tickTrack(b *fakeBackend, t *track, dt float64) {
	b.Advance(dt)
	t.update(dt)
}

// newLoadedClip returns a clip whose handle is already loaded.
func newLoadedClip(name string, length float64, kind clip.LoopKind) (*clip.Clip, *audiotest.Handle) {
	h := audiotest.NewHandle(length)
	h.Load()
	return clip.New(name, h, kind), h
}

func newSmartClip(name string, length, start, end float64) (*clip.Clip, *audiotest.Handle) {
	h := audiotest.NewHandle(length)
	h.Load()
	return clip.NewSmart(name, h, start, end), h
}
