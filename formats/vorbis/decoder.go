// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"
	"os"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/mixdown/timeline"
)

// ReadFile decodes a whole Ogg Vorbis file into a 2-channel timeline sampled
// at expectedFrameRate. Mono streams are duplicated to stereo.
func ReadFile(path string, expectedFrameRate int) (timeline.Timeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return timeline.Timeline{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return Read(f, expectedFrameRate)
}

// Read decodes an Ogg Vorbis stream into a 2-channel timeline.
func Read(r io.Reader, expectedFrameRate int) (timeline.Timeline, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return timeline.Timeline{}, fmt.Errorf("decoding ogg vorbis: %w", err)
	}

	if dec.SampleRate() != expectedFrameRate {
		return timeline.Timeline{}, fmt.Errorf(
			"%w: frame rate is %d, but %d is expected",
			timeline.ErrSampleRateMismatch, dec.SampleRate(), expectedFrameRate,
		)
	}

	channels := dec.Channels()
	if channels < 1 || channels > timeline.NumChannels {
		return timeline.Timeline{}, fmt.Errorf("%w: got %d channels", ErrTooManyChannels, channels)
	}

	var interleaved []float32
	buf := make([]float32, 4096*channels)
	for {
		n, err := dec.Read(buf)
		if n > 0 {
			interleaved = append(interleaved, buf[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return timeline.Timeline{}, fmt.Errorf("reading ogg vorbis data: %w", err)
		}
	}

	frames := len(interleaved) / channels
	if channels == 1 {
		samples := make([]float64, frames)
		for i := 0; i < frames; i++ {
			samples[i] = float64(interleaved[i])
		}
		return timeline.FromMono(samples), nil
	}

	left := make([]float64, frames)
	right := make([]float64, frames)
	for i := 0; i < frames; i++ {
		left[i] = float64(interleaved[2*i])
		right[i] = float64(interleaved[2*i+1])
	}
	return timeline.FromStereo(left, right), nil
}
