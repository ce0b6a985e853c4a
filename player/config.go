// SPDX-License-Identifier: EPL-2.0

package player

import (
	"github.com/ik5/audloop/clip"
	"github.com/rs/zerolog"
)

// Config holds the player's music settings.
type Config struct {
	// Fade and FadeType apply to Start and Input.Replay.
	Fade     float64
	FadeType FadeType

	// Music is the clip Start and Input.Replay play.
	Music *clip.Clip

	// PlayOnStart makes Start play Music.
	PlayOnStart bool

	// Logger receives the player's events. The zero value discards them.
	Logger zerolog.Logger
}

// DefaultConfig crossfades over DefaultFade and plays Music on Start.
func DefaultConfig() Config {
	return Config{
		Fade:        DefaultFade,
		FadeType:    CrossFade,
		PlayOnStart: true,
		Logger:      zerolog.Nop(),
	}
}
