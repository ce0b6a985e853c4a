// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/ik5/audloop/formats/wav"
	"github.com/ik5/audloop/player"
)

// ticksPerSecond is the update rate the player is driven at offline.
const ticksPerSecond = 60

func render(ctx context.Context, args []string, stderr io.Writer, log zerolog.Logger) error {
	var opts clipFlags
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts.register(fs)
	out := fs.String("o", "out.wav", "output WAV file")
	duration := fs.Float64("duration", 10, "seconds to render before fading out")
	fadeOut := fs.Float64("fadeout", 1, "final fade out in seconds")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: render needs one input file", errUsage)
	}

	music, err := opts.music(fs.Arg(0))
	if err != nil {
		return err
	}
	if err := waitLoaded(ctx, music.Handle); err != nil {
		return fmt.Errorf("%s: %w", music, err)
	}

	e, err := newEngine(opts.rate, music, opts.fade, log)
	if err != nil {
		return err
	}
	if err := e.p.Start(); err != nil {
		return err
	}

	sfx, err := opts.effect()
	if err != nil {
		return err
	}
	if sfx != nil {
		if err := waitLoaded(ctx, sfx.Handle); err != nil {
			return fmt.Errorf("%s: %w", sfx, err)
		}
		if err := e.p.PlaySfx(sfx); err != nil {
			return err
		}
	}

	pcm, err := e.run(*duration, *fadeOut)
	if err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := wav.WriteFloat(f, e.dev.SampleRate(), e.dev.Channels(), pcm); err != nil {
		return fmt.Errorf("%s: %w", *out, err)
	}

	log.Info().
		Str("clip", music.String()).
		Str("out", *out).
		Float64("seconds", e.dev.Now()).
		Msg("rendered")
	return nil
}

// run renders seconds of music, then fades out until the player is idle.
func (e *engine) run(seconds, fadeOut float64) ([]float32, error) {
	rate, channels := e.dev.SampleRate(), e.dev.Channels()
	frames := max(1, rate/ticksPerSecond)
	dt := float64(frames) / float64(rate)

	buf := make([]float32, frames*channels)
	out := make([]float32, 0, int(seconds*float64(rate))*channels)

	step := func() error {
		if err := e.p.Update(dt); err != nil {
			return err
		}
		e.dev.Render(buf)
		out = append(out, buf...)
		return nil
	}

	for elapsed := 0.0; elapsed < seconds; elapsed += dt {
		if err := step(); err != nil {
			return nil, err
		}
	}

	e.p.Stop(fadeOut)
	for e.p.Status() != player.Idle {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return out, nil
}
