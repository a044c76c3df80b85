// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/mixdown/utils"
)

// Write encodes channels as interleaved 16-bit PCM WAV at frameRate. Every
// channel must have the same length; samples outside [-1, 1] are clamped.
// The channel count is arbitrary, so stacked multi-bus mixes can be written
// as a single file.
func Write(w io.WriteSeeker, frameRate int, channels [][]float64) error {
	if len(channels) == 0 {
		return ErrNoChannels
	}
	length := len(channels[0])
	for i, channel := range channels {
		if len(channel) != length {
			return fmt.Errorf(
				"%w: channel %d has %d samples, channel 0 has %d",
				ErrChannelLengthMismatch, i, len(channel), length,
			)
		}
	}

	data := make([]int, length*len(channels))
	for i := 0; i < length; i++ {
		for ch, channel := range channels {
			data[i*len(channels)+ch] = int(utils.Float64ToInt16(channel[i]))
		}
	}

	enc := gowav.NewEncoder(w, frameRate, 16, len(channels), 1)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: len(channels),
			SampleRate:  frameRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("writing wav data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav file: %w", err)
	}
	return nil
}

// WriteFile writes channels to a 16-bit PCM WAV file at path.
func WriteFile(path string, frameRate int, channels [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	return Write(f, frameRate, channels)
}
