// SPDX-License-Identifier: EPL-2.0

package mixer

import "errors"

var (
	ErrInvalidConfig = errors.New("mixer needs a positive sample rate and channel count")

	// ErrUnsupportedHandle is returned for clip handles that do not expose
	// decoded PCM.
	ErrUnsupportedHandle = errors.New("clip handle does not provide PCM samples")

	ErrHandleFailed = errors.New("clip handle failed to load")
)
