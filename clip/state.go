// SPDX-License-Identifier: EPL-2.0

package clip

import "fmt"

// LoadState is the progress of bringing a clip's raw data into memory.
type LoadState int32

const (
	Unloaded LoadState = iota
	Loading
	Loaded
	Failed
)

func (s LoadState) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("LoadState(%d)", int32(s))
	}
}

// Done reports whether a load has finished, successfully or not.
func (s LoadState) Done() bool { return s == Loaded || s == Failed }

// Handle is the raw audio data behind a clip.
//
// Load starts bringing the data into memory without blocking and is a no-op
// while loading or loaded. State is polled until it is Loaded or Failed.
// Length is the unscaled duration in seconds and is only meaningful once
// loaded. Err describes the last failure.
//
// The player tells clips apart by comparing their handles, so two clips
// share data only when their handles compare equal. Implement Handle on a
// pointer type; handles of a type that is not comparable are never shared.
type Handle interface {
	Load()
	Unload()
	State() LoadState
	Length() float64
	Err() error
}
