// SPDX-License-Identifier: EPL-2.0

package audiotest

import "github.com/ik5/audloop/clip"

// Handle is a clip.Handle whose loading is driven by the test.
type Handle struct {
	state    clip.LoadState
	length   float64
	err      error
	deferred bool

	Loads   int
	Unloads int
}

// NewHandle returns a handle of length seconds that loads as soon as Load
// is called.
func NewHandle(length float64) *Handle {
	return &Handle{length: length}
}

// NewSlowHandle returns a handle that stays Loading until Finish or Fail.
func NewSlowHandle(length float64) *Handle {
	return &Handle{length: length, deferred: true}
}

func (h *Handle) Load() {
	if h.state == clip.Loading || h.state == clip.Loaded {
		return
	}

	h.Loads++
	h.err = nil
	if h.deferred {
		h.state = clip.Loading
		return
	}
	h.state = clip.Loaded
}

func (h *Handle) Unload() {
	h.Unloads++
	h.state = clip.Unloaded
	h.err = nil
}

// Finish completes a pending load.
func (h *Handle) Finish() { h.state = clip.Loaded }

// Fail ends a pending load with err.
func (h *Handle) Fail(err error) {
	h.state = clip.Failed
	h.err = err
}

func (h *Handle) State() clip.LoadState { return h.state }
func (h *Handle) Length() float64       { return h.length }
func (h *Handle) Err() error            { return h.err }
