// SPDX-License-Identifier: EPL-2.0

package audloop

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/h2non/filetype"

	"github.com/ik5/audloop/audio"
	"github.com/ik5/audloop/clip"
	"github.com/ik5/audloop/formats/aiff"
	"github.com/ik5/audloop/formats/mp3"
	"github.com/ik5/audloop/formats/vorbis"
	"github.com/ik5/audloop/formats/wav"
)

// HeaderSize is the number of leading bytes DetectFormat looks at.
const HeaderSize = 262

// NewRegistry returns a registry with every bundled decoder.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	return reg
}

// DetectFormat returns the format key of an encoded file from its first
// bytes, e.g. "wav" or "ogg".
func DetectFormat(header []byte) (string, error) {
	kind, err := filetype.Match(header)
	if err != nil {
		return "", fmt.Errorf("%w: %w", audio.ErrUnknownFormat, err)
	}
	if kind == filetype.Unknown || !filetype.IsAudio(header) {
		return "", audio.ErrUnknownFormat
	}
	return kind.Extension, nil
}

// OpenClip returns an unloaded clip over the file at path. The decoder is
// picked from the file header, falling back to the extension. The clip is
// named after the title tag, or the file name without extension.
//
// Smart clips also need Start and End; see OpenSmart.
func OpenClip(reg *audio.Registry, path string, kind clip.LoopKind, f clip.Format) (*clip.Clip, error) {
	if reg == nil {
		reg = NewRegistry()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	dec, err := pickDecoder(reg, file, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	data, err := clip.NewData(func() (io.ReadCloser, error) {
		return os.Open(path)
	}, dec, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return clip.New(clipName(file, path), data, kind), nil
}

// OpenSmart is OpenClip for a smart loop whose main section spans
// [start, end) seconds of the file.
func OpenSmart(reg *audio.Registry, path string, start, end float64, f clip.Format) (*clip.Clip, error) {
	c, err := OpenClip(reg, path, clip.Smart, f)
	if err != nil {
		return nil, err
	}
	c.Start = start
	c.End = end
	return c, nil
}

func pickDecoder(reg *audio.Registry, r io.ReadSeeker, path string) (audio.Decoder, error) {
	header := make([]byte, HeaderSize)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if format, err := DetectFormat(header[:n]); err == nil {
		if dec, ok := reg.Get(format); ok {
			return dec, nil
		}
	}
	return reg.ForPath(path)
}

func clipName(r io.ReadSeeker, path string) string {
	if _, err := r.Seek(0, io.SeekStart); err == nil {
		if m, err := tag.ReadFrom(r); err == nil {
			if title := strings.TrimSpace(m.Title()); title != "" {
				return title
			}
		}
	}

	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
