// SPDX-License-Identifier: EPL-2.0

package player

import "fmt"

// Status is the phase of a track. A track only ever moves
// Idle -> Starting -> Playing -> Stopping -> Idle, except that a track may
// be stopped while still Starting.
type Status int

const (
	Idle Status = iota
	Starting
	Playing
	Stopping
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Starting:
		return "starting"
	case Playing:
		return "playing"
	case Stopping:
		return "stopping"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// FadeType picks how a new clip takes over from the one playing.
type FadeType int

const (
	// CrossFade starts the new clip while the old one fades out.
	CrossFade FadeType = iota
	// Wait starts the new clip once the old one has faded out completely.
	Wait
)

func (f FadeType) String() string {
	switch f {
	case CrossFade:
		return "crossfade"
	case Wait:
		return "wait"
	default:
		return fmt.Sprintf("FadeType(%d)", int(f))
	}
}
