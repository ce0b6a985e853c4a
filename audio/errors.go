// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize  = errors.New("dst size must be multiple of channels")
	ErrUnknownFormat   = errors.New("no decoder registered for format")
	ErrInvalidBitDepth = errors.New("unsupported PCM bit depth")
	ErrInvalidBufSize  = errors.New("buffer size must be positive")
)
