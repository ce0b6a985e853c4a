// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

// ErrNotMP3File wraps the go-mp3 error when no frame header can be found.
var ErrNotMP3File = errors.New("not an MP3 stream")
