// SPDX-License-Identifier: EPL-2.0

package player

import (
	"fmt"
	"reflect"

	"github.com/ik5/audloop/clip"
	"github.com/rs/zerolog"
)

// request is a Play call waiting for its clip to load, and then possibly
// for the outgoing track to fall silent.
type request struct {
	clip     *clip.Clip
	fade     float64
	fadeType FadeType

	// set once the tracks have been switched
	old, incoming *track
}

// Player crossfades music clips over a rotation of tracks and plays one-shot
// effects on the backend's separate channel.
//
// A Player is not safe for concurrent use. Every method, Update included,
// must be called from the same goroutine.
type Player struct {
	backend Backend
	cfg     Config
	log     zerolog.Logger

	tracks    [TrackAmount]*track
	front     int
	requested *clip.Clip
	pending   *request
}

// New returns a player drawing its sources and clock from b.
func New(b Backend, cfg Config) (*Player, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: missing backend", ErrInvalidArgument)
	}

	p := &Player{
		backend: b,
		cfg:     cfg,
		log:     cfg.Logger.With().Str("component", "player").Logger(),
	}
	for i := range p.tracks {
		p.tracks[i] = newTrack(i, b, p.log, p.release)
	}
	return p, nil
}

// Start plays the configured music when the config asks for it on start.
func (p *Player) Start() error {
	if !p.cfg.PlayOnStart || p.cfg.Music == nil {
		return nil
	}
	return p.Play(p.cfg.Music, p.cfg.Fade, p.cfg.FadeType)
}

// Play requests c as the music. Requesting the clip that is already
// requested does nothing. The switch happens on a later Update, once the
// clip's data has loaded; a newer Play replaces a request still waiting.
func (p *Player) Play(c *clip.Clip, fade float64, fadeType FadeType) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if c.Kind == clip.Once {
		return fmt.Errorf("%w: %s is a one-shot clip, use PlaySfx", ErrInvalidArgument, c)
	}
	if c.Handle.State() == clip.Failed {
		return loadFailure(c)
	}

	if c == p.requested {
		return nil
	}

	stale := p.pending
	p.requested = c
	p.pending = &request{clip: c, fade: fade, fadeType: fadeType}
	c.Handle.Load()

	if stale != nil {
		p.log.Debug().Str("clip", stale.clip.String()).Msg("request superseded")
		p.release(stale.clip)
	}
	p.log.Debug().
		Str("clip", c.String()).
		Float64("fade", fade).
		Stringer("type", fadeType).
		Msg("play requested")

	return nil
}

// PlaySfx plays a one-shot clip on the backend's effect channel.
func (p *Player) PlaySfx(c *clip.Clip) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if c.Kind != clip.Once {
		return fmt.Errorf("%w: %s is a %s clip, not a one-shot", ErrInvalidArgument, c, c.Kind)
	}
	if c.Handle.State() == clip.Failed {
		return loadFailure(c)
	}

	c.Handle.Load()
	if err := p.backend.PlayOneShot(c.Handle, c.Volume, c.Pitch); err != nil {
		return fmt.Errorf("%s: %w", c, err)
	}
	return nil
}

// Stop fades the current music out and drops any request still waiting.
func (p *Player) Stop(fade float64) {
	if r := p.pending; r != nil {
		p.pending = nil
		p.log.Debug().Str("clip", r.clip.String()).Msg("request cancelled")
		p.release(r.clip)
	}
	p.requested = nil
	p.frontTrack().stop(fade)
}

func (p *Player) Pause()  { p.frontTrack().pause() }
func (p *Player) Resume() { p.frontTrack().resume() }

// Update advances every track by dt seconds and moves a waiting request
// forward. The error is that of a request that could not start.
func (p *Player) Update(dt float64) error {
	for i := range TrackAmount {
		p.tracks[(p.front+i)%TrackAmount].update(dt)
	}
	return p.advance()
}

// Status is the status of the front track.
func (p *Player) Status() Status { return p.frontTrack().status }

// Current is the clip on the front track, or nil.
func (p *Player) Current() *clip.Clip { return p.frontTrack().clip }

// Requested is the clip of the last accepted Play, or nil after Stop.
func (p *Player) Requested() *clip.Clip { return p.requested }

// Config returns the configuration the player was built with.
func (p *Player) Config() Config { return p.cfg }

func (p *Player) frontTrack() *track { return p.tracks[p.front] }

func (p *Player) advance() error {
	r := p.pending
	if r == nil {
		return nil
	}

	if r.incoming == nil {
		if !r.clip.Handle.State().Done() {
			return nil
		}

		r.old = p.frontTrack()
		r.old.stop(r.fade)
		p.front = (p.front + 1) % TrackAmount
		r.incoming = p.frontTrack()

		p.log.Info().
			Str("clip", r.clip.String()).
			Int("from", r.old.id).
			Int("to", r.incoming.id).
			Stringer("type", r.fadeType).
			Msg("switching track")

		// still fading out from an earlier switch
		if r.fadeType == CrossFade && r.incoming.status != Idle {
			r.incoming.halt()
		}
	}

	if r.fadeType == Wait && (r.old.status != Idle || r.incoming.status != Idle) {
		return nil
	}

	p.pending = nil
	if err := r.incoming.play(r.clip, r.fade); err != nil {
		p.requested = nil
		p.log.Error().Err(err).Str("clip", r.clip.String()).Msg("cannot start clip")
		p.release(r.clip)
		return err
	}
	return nil
}

// release unloads c's data unless a track or the waiting request still
// refers to the same handle.
func (p *Player) release(c *clip.Clip) {
	if c == nil || c.Handle == nil {
		return
	}

	for _, t := range p.tracks {
		if t.clip != nil && sameHandle(t.clip.Handle, c.Handle) {
			return
		}
	}
	if p.pending != nil && sameHandle(p.pending.clip.Handle, c.Handle) {
		return
	}

	c.Handle.Unload()
}

// sameHandle reports whether a and b are the same handle. Handles of a type
// that cannot be compared are never the same, instead of panicking.
func sameHandle(a, b clip.Handle) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if ta != nil && !ta.Comparable() {
		return false
	}
	return a == b
}
