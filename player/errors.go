// SPDX-License-Identifier: EPL-2.0

package player

import "errors"

var (
	// ErrInvalidArgument covers missing clips, bad clip parameters and
	// clips of the wrong loop kind for the call.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrLoadFailure is returned when a clip's audio data failed to load.
	ErrLoadFailure = errors.New("clip failed to load")

	// ErrInvalidState is returned for operations the current track status does not allow.
	ErrInvalidState = errors.New("invalid track state")
)
