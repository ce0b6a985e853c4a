// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// ReadAll drains src into a single interleaved slice.
//
// bufSize is the size of each read; it is rounded down to a whole number of
// frames. When src implements FrameCounter the result is allocated once.
// io.EOF is not returned: a nil error means the whole stream was read.
func ReadAll(src Source, bufSize int) ([]float32, error) {
	channels := src.Channels()
	if bufSize <= 0 {
		return nil, ErrInvalidBufSize
	}
	if bufSize < channels {
		bufSize = channels
	}
	bufSize -= bufSize % channels

	var out []float32
	if fc, ok := src.(FrameCounter); ok && fc.Frames() > 0 {
		out = make([]float32, 0, fc.Frames()*int64(channels))
	}

	buf := make([]float32, bufSize)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	return out, nil
}
