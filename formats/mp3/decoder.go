// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"
	"os"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/mixdown/timeline"
)

// ReadFile decodes a whole MP3 file into a 2-channel timeline sampled at
// expectedFrameRate.
func ReadFile(path string, expectedFrameRate int) (timeline.Timeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return timeline.Timeline{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return Read(f, expectedFrameRate)
}

// Read decodes an MP3 stream into a 2-channel timeline.
func Read(r io.Reader, expectedFrameRate int) (timeline.Timeline, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return timeline.Timeline{}, fmt.Errorf("decoding mp3: %w", err)
	}

	if dec.SampleRate() != expectedFrameRate {
		return timeline.Timeline{}, fmt.Errorf(
			"%w: frame rate is %d, but %d is expected",
			timeline.ErrSampleRateMismatch, dec.SampleRate(), expectedFrameRate,
		)
	}

	// go-mp3 always outputs 16-bit little-endian stereo
	data, err := io.ReadAll(dec)
	if err != nil {
		return timeline.Timeline{}, fmt.Errorf("reading mp3 data: %w", err)
	}

	frames := len(data) / 4
	left := make([]float64, frames)
	right := make([]float64, frames)
	for i := 0; i < frames; i++ {
		l := int16(uint16(data[4*i]) | uint16(data[4*i+1])<<8)
		r := int16(uint16(data[4*i+2]) | uint16(data[4*i+3])<<8)
		left[i] = float64(l) / 32768.0
		right[i] = float64(r) / 32768.0
	}
	return timeline.FromStereo(left, right), nil
}
