// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"os"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/mixdown/timeline"
)

// ReadFile reads a whole WAV file into a 2-channel timeline. The file must
// be sampled at expectedFrameRate; mono files are duplicated to stereo.
func ReadFile(path string, expectedFrameRate int) (timeline.Timeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return timeline.Timeline{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return Read(f, expectedFrameRate)
}

// Read decodes a WAV stream into a 2-channel timeline.
func Read(r io.ReadSeeker, expectedFrameRate int) (timeline.Timeline, error) {
	dec := gowav.NewDecoder(r)
	if !dec.IsValidFile() {
		return timeline.Timeline{}, ErrNotWavFile
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return timeline.Timeline{}, fmt.Errorf("reading wav data: %w", err)
	}

	rate := buf.Format.SampleRate
	if rate != expectedFrameRate {
		return timeline.Timeline{}, fmt.Errorf(
			"%w: frame rate is %d, but %d is expected",
			timeline.ErrSampleRateMismatch, rate, expectedFrameRate,
		)
	}

	channels := buf.Format.NumChannels
	if channels < 1 || channels > timeline.NumChannels {
		return timeline.Timeline{}, fmt.Errorf("%w: got %d channels", ErrTooManyChannels, channels)
	}

	// go-audio uses int format, normalize based on bit depth. 8-bit WAV
	// PCM is unsigned with silence at 128 (unlike AIFF, where it is
	// signed), so it must be re-centered before scaling.
	var maxVal, bias float64
	switch dec.BitDepth {
	case 8:
		maxVal = 128.0
		bias = 128.0
	case 16:
		maxVal = 32768.0
	case 24:
		maxVal = 8388608.0
	case 32:
		maxVal = 2147483648.0
	default:
		maxVal = 32768.0
	}

	frames := len(buf.Data) / channels
	if channels == 1 {
		samples := make([]float64, frames)
		for i := 0; i < frames; i++ {
			samples[i] = (float64(buf.Data[i]) - bias) / maxVal
		}
		return timeline.FromMono(samples), nil
	}

	left := make([]float64, frames)
	right := make([]float64, frames)
	for i := 0; i < frames; i++ {
		left[i] = (float64(buf.Data[2*i]) - bias) / maxVal
		right[i] = (float64(buf.Data[2*i+1]) - bias) / maxVal
	}
	return timeline.FromStereo(left, right), nil
}
