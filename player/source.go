// SPDX-License-Identifier: EPL-2.0

package player

import "github.com/ik5/audloop/clip"

const (
	// SourceAmount is the number of sources each track alternates between.
	SourceAmount = 2
	// TrackAmount is the number of tracks the player rotates through.
	TrackAmount = 2
)

// Clock reports the audio clock in seconds. It must be monotonic and is
// independent of how often Update is called.
type Clock interface {
	Now() float64
}

// Source is one physical playback unit.
//
// Times passed to PlayAt and StopAt are absolute Clock times. Seek takes a
// position in raw (unscaled) seconds into the assigned clip.
type Source interface {
	SetClip(h clip.Handle)
	SetPitch(pitch float64)
	SetLoop(loop bool)
	SetVolume(volume float64)
	Seek(seconds float64)
	Play()
	PlayAt(t float64)
	StopAt(t float64)
	Stop()
	Pause()
	Resume()
}

// Backend creates sources on a shared audio clock and plays one-shot clips
// on a channel outside the track rotation.
type Backend interface {
	Clock
	NewSource() Source
	PlayOneShot(h clip.Handle, volume, pitch float64) error
}

// pool is the fixed ring of sources a track swaps between at loop
// boundaries.
type pool struct {
	sources [SourceAmount]Source
	active  int
}

func newPool(b Backend) pool {
	var p pool
	for i := range p.sources {
		p.sources[i] = b.NewSource()
	}
	return p
}

func (p *pool) current() Source { return p.sources[p.active] }

// rotate makes the next source active and returns it.
func (p *pool) rotate() Source {
	p.active = (p.active + 1) % SourceAmount
	return p.sources[p.active]
}

func (p *pool) reset() { p.active = 0 }

func (p *pool) each(fn func(Source)) {
	for _, s := range p.sources {
		fn(s)
	}
}
