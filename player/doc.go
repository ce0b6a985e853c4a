// SPDX-License-Identifier: EPL-2.0

// Package player schedules background music on an audio clock.
//
// A Player owns two tracks and switches between them to crossfade from one
// clip to the next. Each track owns two sources and alternates between them
// at loop boundaries, so a smart clip repeats its main section without a
// gap while its intro plays only once.
//
// # Driving the player
//
// The player does nothing on its own. Call Update once per frame with the
// frame time; it ramps volumes, starts clips whose data finished loading and
// arms the next loop boundary ahead of the clock:
//
//	p, err := player.New(backend, player.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	if err := p.Play(theme, 2, player.CrossFade); err != nil {
//	    return err
//	}
//	for range ticker.C {
//	    if err := p.Update(1.0 / 60); err != nil {
//	        log.Error().Err(err).Msg("music")
//	    }
//	}
//
// Frame time only drives the fades. Loop boundaries are placed on the
// backend's Clock, which the backend advances at the rate audio is
// actually rendered, and handed to sources with PlayAt and StopAt.
//
// # Smart loops
//
// A smart clip starts Prepare seconds after Play, so its first main
// section ends at start + Intro + Main. Once the clock is within half a
// main section of that boundary, the idle source is seeked to the start of
// the region and told to start exactly there while the active source is told
// to stop at the same instant. Every later boundary is one Main further on.
//
// # Errors
//
// Play and PlaySfx validate synchronously and return ErrInvalidArgument or
// ErrLoadFailure. A clip that fails to load after Play was accepted is
// reported by the Update that would have started it. Stop, Pause and Resume
// never fail.
package player
