// SPDX-License-Identifier: EPL-2.0

package player

import (
	"fmt"
	"math"

	"github.com/ik5/audloop/clip"
	"github.com/rs/zerolog"
)

const (
	// DefaultFade replaces fade durations that are zero or negative.
	DefaultFade = 0.055

	// Prepare is how far ahead of the clock a smart clip is started, so the
	// backend can schedule the first frame exactly.
	Prepare = 0.02

	// ramps snap to their end within this distance, absorbing the rounding
	// of many small dt steps
	rampEpsilon = 1e-9
)

func normalizeFade(seconds float64) float64 {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return DefaultFade
	}
	return seconds
}

// track drives one source pool through a fade in, steady playback and a
// fade out, and keeps smart loops armed one boundary ahead of the clock.
type track struct {
	id      int
	clock   Clock
	pool    pool
	log     zerolog.Logger
	release func(c *clip.Clip)

	status Status
	clip   *clip.Clip
	ramp   float64
	fade   float64

	// audio clock time the next main section starts; smart clips only
	transition      float64
	pausedRemaining float64
	paused          bool
}

func newTrack(id int, b Backend, log zerolog.Logger, release func(*clip.Clip)) *track {
	return &track{
		id:      id,
		clock:   b,
		pool:    newPool(b),
		log:     log.With().Int("track", id).Logger(),
		release: release,
	}
}

// play starts c on an idle track. The clip must be loaded.
func (t *track) play(c *clip.Clip, fade float64) error {
	if t.status != Idle {
		return fmt.Errorf("%w: play on %s track", ErrInvalidState, t.status)
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if c.Kind == clip.Once {
		return fmt.Errorf("%w: %s is a one-shot clip", ErrInvalidArgument, c)
	}

	switch c.Handle.State() {
	case clip.Loaded:
	case clip.Failed:
		return loadFailure(c)
	default:
		return fmt.Errorf("%w: %s: %w", ErrInvalidArgument, c, clip.ErrNotLoaded)
	}

	t.clip = c
	t.fade = normalizeFade(fade)
	t.ramp = 0
	t.paused = false
	t.pool.reset()
	t.pool.each(func(s Source) {
		s.SetClip(c.Handle)
		s.SetPitch(c.Pitch)
		s.SetLoop(c.Kind == clip.Loop)
		s.SetVolume(0)
	})

	if c.Kind == clip.Smart {
		start := t.clock.Now() + Prepare
		t.transition = start + c.Intro() + c.Main()
		t.pool.current().Seek(0)
		t.pool.current().PlayAt(start)
		t.pool.current().StopAt(t.transition)
	} else {
		t.pool.current().Play()
	}

	t.setStatus(Starting)
	return nil
}

// stop fades the track out over fade seconds. Stopping an idle track does
// nothing; stopping a track that is already stopping adopts the new fade.
func (t *track) stop(fade float64) {
	if t.status == Idle {
		return
	}
	t.fade = normalizeFade(fade)
	t.setStatus(Stopping)
}

// halt finalizes the track immediately, without a fade.
func (t *track) halt() {
	if t.status == Idle {
		return
	}
	t.finalize()
}

// pause holds every source, including one armed for the next boundary.
// The ramp is frozen until resume.
func (t *track) pause() {
	if t.status == Idle || t.paused {
		return
	}

	t.paused = true
	t.pausedRemaining = t.transition - t.clock.Now()
	t.pool.each(Source.Pause)
}

func (t *track) resume() {
	if !t.paused {
		return
	}

	t.paused = false
	t.pool.each(Source.Resume)
	t.transition = t.clock.Now() + t.pausedRemaining
	t.schedule()
}

// update advances the track by dt seconds of frame time.
func (t *track) update(dt float64) {
	if t.status == Idle {
		return
	}
	// a paused track only moves when it is being stopped
	if t.paused && t.status != Stopping {
		return
	}
	dt = max(dt, 0)

	switch t.status {
	case Starting:
		t.ramp = min(1, t.ramp+dt/t.fade)
		if t.ramp >= 1-rampEpsilon {
			t.ramp = 1
			t.setStatus(Playing)
		}
	case Stopping:
		t.ramp = max(0, t.ramp-dt/t.fade)
		if t.ramp <= rampEpsilon {
			t.finalize()
			return
		}
	}

	t.schedule()
	t.applyVolume()
}

// schedule arms the idle source for the next loop boundary once the clock
// is within half a main section of it. At most one swap happens per call.
func (t *track) schedule() {
	if t.paused || t.clip == nil || t.clip.Kind != clip.Smart {
		return
	}

	main := t.clip.Main()
	now := t.clock.Now()
	if now+main/2 <= t.transition {
		return
	}

	at := t.transition
	if earliest := now + Prepare; at < earliest {
		t.log.Warn().
			Str("clip", t.clip.String()).
			Float64("missed", earliest-at).
			Msg("loop boundary passed before it was scheduled")
		at = earliest
	}

	// the displaced source already stops at the old transition, so a late
	// boundary is heard as silence rather than the outro
	next := t.pool.rotate()
	t.transition = at + main
	next.Seek(t.clip.Start)
	next.PlayAt(at)
	next.StopAt(t.transition)

	t.log.Debug().
		Str("clip", t.clip.String()).
		Float64("at", at).
		Float64("next", t.transition).
		Msg("loop boundary scheduled")
}

func (t *track) applyVolume() {
	v := t.ramp * t.clip.Volume
	t.pool.each(func(s Source) { s.SetVolume(v) })
}

func (t *track) finalize() {
	t.pool.each(func(s Source) {
		s.Stop()
		s.Seek(0)
		s.SetClip(nil)
	})
	t.pool.reset()

	c := t.clip
	t.clip = nil
	t.ramp = 0
	t.paused = false
	t.transition = 0
	t.pausedRemaining = 0
	t.setStatus(Idle)

	if t.release != nil {
		t.release(c)
	}
}

func (t *track) setStatus(s Status) {
	if t.status == s {
		return
	}

	t.log.Debug().
		Stringer("from", t.status).
		Stringer("to", s).
		Msg("track status")
	t.status = s
}

func loadFailure(c *clip.Clip) error {
	if err := c.Handle.Err(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrLoadFailure, c, err)
	}
	return fmt.Errorf("%w: %s", ErrLoadFailure, c)
}
