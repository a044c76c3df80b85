// SPDX-License-Identifier: EPL-2.0

package mixdown

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ik5/mixdown/formats/aiff"
	"github.com/ik5/mixdown/formats/mp3"
	"github.com/ik5/mixdown/formats/vorbis"
	"github.com/ik5/mixdown/formats/wav"
	"github.com/ik5/mixdown/timeline"
)

// ReadFileFunc decodes an audio file into a 2-channel timeline sampled at
// the expected frame rate.
type ReadFileFunc func(path string, expectedFrameRate int) (timeline.Timeline, error)

// Registry for file decoders by extension (e.g., "wav", "mp3", "ogg").
type registry struct {
	codecs map[string]ReadFileFunc

	mtx *sync.Mutex
}

var fileFormats = &registry{
	codecs: make(map[string]ReadFileFunc),
	mtx:    &sync.Mutex{},
}

func init() {
	RegisterFormat("wav", wav.ReadFile)
	RegisterFormat("mp3", mp3.ReadFile)
	RegisterFormat("ogg", vorbis.ReadFile)
	RegisterFormat("oga", vorbis.ReadFile)
	RegisterFormat("aiff", aiff.ReadFile)
	RegisterFormat("aif", aiff.ReadFile)
	RegisterFormat("aifc", aiff.ReadFile)
}

// RegisterFormat makes DecodeFile use fn for files with the given extension
// (case-insensitive, without the dot). Registering an already known
// extension replaces its decoder.
func RegisterFormat(ext string, fn ReadFileFunc) {
	fileFormats.mtx.Lock()
	defer fileFormats.mtx.Unlock()

	fileFormats.codecs[strings.ToLower(ext)] = fn
}

// DecodeFile reads an audio file into a timeline, choosing the decoder by
// file extension.
func DecodeFile(path string, expectedFrameRate int) (timeline.Timeline, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	fileFormats.mtx.Lock()
	fn, ok := fileFormats.codecs[ext]
	fileFormats.mtx.Unlock()

	if !ok {
		return timeline.Timeline{}, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	return fn(path, expectedFrameRate)
}
