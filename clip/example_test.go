// SPDX-License-Identifier: EPL-2.0

package clip_test

import (
	"fmt"

	"github.com/ik5/audloop/clip"
	"github.com/ik5/audloop/internal/audiotest"
)

func ExampleClip_Outro() {
	h := audiotest.NewHandle(10)
	c := clip.NewSmart("boss", h, 2, 8)
	c.Pitch = 2

	_, err := c.Outro()
	fmt.Println(err)

	h.Load()
	outro, _ := c.Outro()
	fmt.Printf("intro %v, main %v, outro %v\n", c.Intro(), c.Main(), outro)
	// Output:
	// boss: clip audio data is not loaded
	// intro 1, main 3, outro 1
}
