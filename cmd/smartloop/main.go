// SPDX-License-Identifier: EPL-2.0

// Command smartloop plays or renders a music file through the loop player.
//
//	smartloop [-v] render [flags] <input> -o out.wav
//	smartloop [-v] play [flags] <input>
//
// A clip becomes a smart loop when -end is greater than -start; otherwise the
// whole file loops. While playing, lines on stdin control the player:
// pause, resume, stop, replay, sfx and quit.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/ik5/audloop"
	"github.com/ik5/audloop/clip"
	"github.com/ik5/audloop/mixer"
	"github.com/ik5/audloop/player"
)

var errUsage = errors.New("usage: smartloop [-v] {render|play} [flags] <input>")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stderr io.Writer) error {
	fs := flag.NewFlagSet("smartloop", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "log track and schedule events")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()

	if fs.NArg() == 0 {
		return errUsage
	}
	switch cmd, rest := fs.Arg(0), fs.Args()[1:]; cmd {
	case "render":
		return render(ctx, rest, stderr, log)
	case "play":
		return play(ctx, rest, stdin, stderr, log)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

// clipFlags are the flags shared by every command.
type clipFlags struct {
	rate   int
	start  float64
	end    float64
	volume float64
	pitch  float64
	fade   float64
	sfx    string
}

func (o *clipFlags) register(fs *flag.FlagSet) {
	fs.IntVar(&o.rate, "rate", 44100, "output sample rate")
	fs.Float64Var(&o.start, "start", 0, "loop region start in seconds")
	fs.Float64Var(&o.end, "end", 0, "loop region end in seconds; enables smart looping")
	fs.Float64Var(&o.volume, "volume", 1, "music volume in [0, 1]")
	fs.Float64Var(&o.pitch, "pitch", 1, "playback speed")
	fs.Float64Var(&o.fade, "fade", 0.5, "fade in seconds")
	fs.StringVar(&o.sfx, "sfx", "", "one-shot effect file")
}

func (o *clipFlags) music(path string) (*clip.Clip, error) {
	f := clip.Format{SampleRate: o.rate}

	var (
		c   *clip.Clip
		err error
	)
	if o.end > o.start {
		c, err = audloop.OpenSmart(nil, path, o.start, o.end, f)
	} else {
		c, err = audloop.OpenClip(nil, path, clip.Loop, f)
	}
	if err != nil {
		return nil, err
	}

	c.Volume = o.volume
	c.Pitch = o.pitch
	return c, c.Validate()
}

func (o *clipFlags) effect() (*clip.Clip, error) {
	if o.sfx == "" {
		return nil, nil
	}
	return audloop.OpenClip(nil, o.sfx, clip.Once, clip.Format{SampleRate: o.rate})
}

// engine is a mixer device driven by a player.
type engine struct {
	dev *mixer.Device
	p   *player.Player
}

func newEngine(rate int, music *clip.Clip, fade float64, log zerolog.Logger) (*engine, error) {
	dev, err := mixer.New(mixer.Config{SampleRate: rate, Channels: 2, Logger: log})
	if err != nil {
		return nil, err
	}

	cfg := player.DefaultConfig()
	cfg.Music = music
	cfg.Fade = fade
	cfg.Logger = log
	p, err := player.New(dev, cfg)
	if err != nil {
		return nil, err
	}
	return &engine{dev: dev, p: p}, nil
}

// waitLoaded loads h and blocks until the load finishes.
func waitLoaded(ctx context.Context, h clip.Handle) error {
	h.Load()

	tick := time.NewTicker(time.Millisecond)
	defer tick.Stop()

	for {
		switch h.State() {
		case clip.Loaded:
			return nil
		case clip.Failed:
			return h.Err()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
		}
	}
}
