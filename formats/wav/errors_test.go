// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrors_Wrapping(t *testing.T) {
	t.Parallel()

	for _, sentinel := range []error{
		ErrNotWavFile,
		ErrUnsupportedWavLayout,
		ErrOnlyPCMSupported,
		ErrUnsupportedWavChunks,
		ErrInvalidChannels,
		ErrInvalidSampleCount,
	} {
		wrapped := fmt.Errorf("%w: %w", sentinel, errors.New("cause"))
		if !errors.Is(wrapped, sentinel) {
			t.Errorf("errors.Is(%v, %v) = false, want true", wrapped, sentinel)
		}
	}
}
