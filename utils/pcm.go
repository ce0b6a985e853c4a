// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 clamps x to [-1, 1] and scales it by 32767, so the
// conversion is symmetric around zero.
func Float32ToInt16(x float32) int16 {
	x = max(-1, min(1, x))
	return int16(x * math.MaxInt16)
}

// SecondsToFrames converts a position in seconds to a frame index at rate,
// rounding to the nearest frame.
func SecondsToFrames(seconds float64, rate int) int64 {
	return int64(math.Round(seconds * float64(rate)))
}

func FramesToSeconds(frames int64, rate int) float64 {
	if rate <= 0 {
		return 0
	}
	return float64(frames) / float64(rate)
}
