// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"

	"github.com/ik5/audloop/audio"
	"github.com/ik5/audloop/internal/audiotest"
)

// Example_monoMixer folds a stereo stream into one channel.
func Example_monoMixer() {
	src := audiotest.NewMockSource(16000, 2, 100, func(_, channel int) float32 {
		if channel == 0 {
			return 0.25
		}
		return 0.75
	})

	mono := audio.NewMonoMixer(src)
	pcm, err := audio.ReadAll(mono, 64)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%d channel, %d samples, first %.2f\n", mono.Channels(), len(pcm), pcm[0])
	// Output: 1 channel, 100 samples, first 0.50
}

func ExampleRegistry_ForPath() {
	reg := audio.NewRegistry()
	reg.Register("wav", nil)

	_, err := reg.ForPath("music/theme.WAV")
	fmt.Println(err)

	_, err = reg.ForPath("music/theme.flac")
	fmt.Println(err)
	// Output:
	// <nil>
	// no decoder registered for format
}
