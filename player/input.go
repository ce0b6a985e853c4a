// SPDX-License-Identifier: EPL-2.0

package player

import "github.com/ik5/audloop/clip"

// Input is a narrow handle on a Player for code that only triggers audio.
// The zero Input has no player and every call on it does nothing.
type Input struct {
	p *Player
}

func NewInput(p *Player) Input { return Input{p: p} }

// Replay plays the player's configured music with the given fade.
func (in Input) Replay(fade float64, fadeType FadeType) error {
	if in.p == nil {
		return nil
	}
	return in.p.Play(in.p.cfg.Music, fade, fadeType)
}

func (in Input) Play(c *clip.Clip, fade float64, fadeType FadeType) error {
	if in.p == nil {
		return nil
	}
	return in.p.Play(c, fade, fadeType)
}

func (in Input) PlaySfx(c *clip.Clip) error {
	if in.p == nil {
		return nil
	}
	return in.p.PlaySfx(c)
}

func (in Input) Stop(fade float64) {
	if in.p != nil {
		in.p.Stop(fade)
	}
}

func (in Input) Pause() {
	if in.p != nil {
		in.p.Pause()
	}
}

func (in Input) Resume() {
	if in.p != nil {
		in.p.Resume()
	}
}
