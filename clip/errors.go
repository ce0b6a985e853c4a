// SPDX-License-Identifier: EPL-2.0

package clip

import "errors"

var (
	ErrNilClip          = errors.New("missing clip")
	ErrMissingHandle    = errors.New("clip has no audio handle")
	ErrNotLoaded        = errors.New("clip audio data is not loaded")
	ErrInvalidPitch     = errors.New("pitch must be non-zero and within [-3, 3]")
	ErrInvalidVolume    = errors.New("volume must be within [0, 1]")
	ErrInvalidKind      = errors.New("unknown loop kind")
	ErrInvalidRegion    = errors.New("loop region must satisfy 0 <= start <= end")
	ErrEmptyRegion      = errors.New("smart loop region has zero length")
	ErrRegionOutOfRange = errors.New("loop region ends past the clip length")
	ErrInvalidFormat    = errors.New("target format must have a positive rate and channel count")
)
