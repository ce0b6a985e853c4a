// SPDX-License-Identifier: EPL-2.0

package player

import (
	"fmt"

	"github.com/ik5/audloop/clip"
	"github.com/ik5/audloop/internal/audiotest"
)

func ExamplePlayer_Play() {
	backend := newFakeBackend()
	p, _ := New(backend, DefaultConfig())

	// 10s asset looping the section between 2s and 8s
	theme := clip.NewSmart("theme", audiotest.NewHandle(10), 2, 8)

	_ = p.Play(theme, 0.5, CrossFade)
	for range 120 {
		backend.Advance(1.0 / 60)
		_ = p.Update(1.0 / 60)
	}

	fmt.Println(p.Current(), p.Status())
	fmt.Printf("intro %.0fs, main %.0fs\n", theme.Intro(), theme.Main())
	// Output:
	// theme playing
	// intro 2s, main 6s
}

func ExampleInput() {
	var in Input // not wired to a player yet
	fmt.Println(in.Play(nil, 0, CrossFade))
	// Output: <nil>
}
