// SPDX-License-Identifier: EPL-2.0

package clip

import (
	"fmt"
	"math"
)

// LoopKind dictates how a clip is played with regards to looping.
type LoopKind int

const (
	// Loop plays the entire clip in a seamless loop.
	Loop LoopKind = iota
	// Smart loops only the region between Start and End, keeping the intro
	// before it and leaving the outro after it for a manual stop.
	Smart
	// Once plays the clip a single time, as a sound effect.
	Once
)

func (k LoopKind) String() string {
	switch k {
	case Loop:
		return "loop"
	case Smart:
		return "smart"
	case Once:
		return "once"
	default:
		return fmt.Sprintf("LoopKind(%d)", int(k))
	}
}

const (
	MaxPitch = 3.0
	MinPitch = -3.0
)

// Clip describes a playable asset. It is read, never modified, while playing.
//
// Start and End are raw (unscaled) seconds into the asset. Derived lengths
// are scaled by Pitch: a pitch of 2 plays every section in half the time.
type Clip struct {
	Name   string
	Handle Handle
	Kind   LoopKind
	Volume float64
	Pitch  float64
	Start  float64
	End    float64
}

// New returns a clip at full volume and natural pitch.
func New(name string, h Handle, kind LoopKind) *Clip {
	return &Clip{
		Name:   name,
		Handle: h,
		Kind:   kind,
		Volume: 1,
		Pitch:  1,
	}
}

// NewSmart returns a clip looping the region [start, end].
func NewSmart(name string, h Handle, start, end float64) *Clip {
	c := New(name, h, Smart)
	c.Start = start
	c.End = end
	return c
}

func (c *Clip) String() string {
	if c == nil {
		return "<nil>"
	}
	if c.Name != "" {
		return c.Name
	}
	return "clip(" + c.Kind.String() + ")"
}

// Loaded reports whether the raw data is ready for playback.
func (c *Clip) Loaded() bool {
	return c.Handle != nil && c.Handle.State() == Loaded
}

// UnscaledMain is the length of the main section, ignoring pitch.
func (c *Clip) UnscaledMain() float64 { return c.End - c.Start }

// Intro is the time before the main section starts.
func (c *Clip) Intro() float64 { return c.Start / c.Pitch }

// Main is the time one iteration of the main section takes.
func (c *Clip) Main() float64 { return c.UnscaledMain() / c.Pitch }

// Length is the time the whole asset takes to play.
func (c *Clip) Length() (float64, error) {
	raw, err := c.rawLength()
	if err != nil {
		return 0, err
	}
	return raw / c.Pitch, nil
}

// Outro is the time from the end of the main section to the end of the asset.
func (c *Clip) Outro() (float64, error) {
	raw, err := c.rawLength()
	if err != nil {
		return 0, err
	}
	return (raw - c.End) / c.Pitch, nil
}

func (c *Clip) rawLength() (float64, error) {
	if c.Handle == nil {
		return 0, ErrMissingHandle
	}
	if c.Handle.State() != Loaded {
		return 0, fmt.Errorf("%s: %w", c, ErrNotLoaded)
	}
	return c.Handle.Length(), nil
}

// Validate checks the parameters the scheduler depends on. The loop region
// is only checked against the asset length once the asset is loaded.
func (c *Clip) Validate() error {
	if c == nil {
		return ErrNilClip
	}
	if c.Handle == nil {
		return ErrMissingHandle
	}
	if c.Pitch == 0 || c.Pitch < MinPitch || c.Pitch > MaxPitch || math.IsNaN(c.Pitch) {
		return fmt.Errorf("%w: %v", ErrInvalidPitch, c.Pitch)
	}
	if c.Volume < 0 || c.Volume > 1 || math.IsNaN(c.Volume) {
		return fmt.Errorf("%w: %v", ErrInvalidVolume, c.Volume)
	}
	if c.Kind < Loop || c.Kind > Once {
		return fmt.Errorf("%w: %v", ErrInvalidKind, c.Kind)
	}

	if c.Kind != Smart {
		return nil
	}

	// a negative pitch would schedule boundaries backwards in time
	if c.Pitch < 0 {
		return fmt.Errorf("%w: smart loop needs a positive pitch, got %v", ErrInvalidPitch, c.Pitch)
	}
	if c.Start < 0 || c.End < c.Start {
		return fmt.Errorf("%w: [%v, %v]", ErrInvalidRegion, c.Start, c.End)
	}
	if c.Main() <= 0 {
		return ErrEmptyRegion
	}
	if c.Handle.State() == Loaded && c.End > c.Handle.Length() {
		return fmt.Errorf("%w: end %v past length %v", ErrRegionOutOfRange, c.End, c.Handle.Length())
	}

	return nil
}
