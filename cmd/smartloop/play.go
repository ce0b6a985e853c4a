// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/rs/zerolog"

	"github.com/ik5/audloop/clip"
	"github.com/ik5/audloop/player"
)

var errNoEffect = errors.New("no -sfx file given")

func play(ctx context.Context, args []string, stdin io.Reader, stderr io.Writer, log zerolog.Logger) error {
	var opts clipFlags
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts.register(fs)
	duration := fs.Duration("duration", 0, "stop after this long; 0 plays until quit")
	fadeOut := fs.Float64("fadeout", 1, "fade out on quit in seconds")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: play needs one input file", errUsage)
	}

	music, err := opts.music(fs.Arg(0))
	if err != nil {
		return err
	}
	sfx, err := opts.effect()
	if err != nil {
		return err
	}

	e, err := newEngine(opts.rate, music, opts.fade, log)
	if err != nil {
		return err
	}

	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   e.dev.SampleRate(),
		ChannelCount: e.dev.Channels(),
		Format:       oto.FormatFloat32LE,
		BufferSize:   40 * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("audio output: %w", err)
	}
	<-ready

	out := otoCtx.NewPlayer(e.dev)
	out.Play()
	defer out.Pause()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := &session{
		in:      player.NewInput(e.p),
		p:       e.p,
		sfx:     sfx,
		fade:    opts.fade,
		fadeOut: *fadeOut,
		log:     log,
	}
	if err := e.p.Start(); err != nil {
		return err
	}
	log.Info().Str("clip", music.String()).Msg("playing; type pause, resume, stop, replay, sfx or quit")

	readCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	return s.loop(ctx, readLines(readCtx, stdin), *duration)
}

// session maps stdin commands onto the player and drives its updates.
type session struct {
	in       player.Input
	p        *player.Player
	sfx      *clip.Clip
	fade     float64
	fadeOut  float64
	quitting bool
	log      zerolog.Logger
}

func (s *session) loop(ctx context.Context, lines <-chan string, duration time.Duration) error {
	ticker := time.NewTicker(time.Second / ticksPerSecond)
	defer ticker.Stop()

	var deadline <-chan time.Time
	if duration > 0 {
		timer := time.NewTimer(duration)
		defer timer.Stop()
		deadline = timer.C
	}

	done := ctx.Done()
	last := time.Now()
	for {
		select {
		case <-done:
			done = nil
			s.quit()
		case <-deadline:
			deadline = nil
			s.quit()
		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			if err := s.command(line); err != nil {
				s.log.Warn().Err(err).Str("command", line).Msg("command failed")
			}
		case now := <-ticker.C:
			if err := s.p.Update(now.Sub(last).Seconds()); err != nil {
				s.log.Error().Err(err).Msg("update")
			}
			last = now
			if s.quitting && s.p.Status() == player.Idle {
				return nil
			}
		}
	}
}

func (s *session) command(line string) error {
	switch cmd := strings.ToLower(strings.TrimSpace(line)); cmd {
	case "":
	case "pause":
		s.in.Pause()
	case "resume":
		s.in.Resume()
	case "stop":
		s.in.Stop(s.fade)
	case "replay":
		return s.in.Replay(s.fade, player.CrossFade)
	case "sfx":
		if s.sfx == nil {
			return errNoEffect
		}
		return s.in.PlaySfx(s.sfx)
	case "quit", "exit":
		s.quit()
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func (s *session) quit() {
	if s.quitting {
		return
	}
	s.quitting = true
	s.in.Stop(s.fadeOut)
}

// readLines sends r's lines until r ends or ctx is done.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}
