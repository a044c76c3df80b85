// SPDX-License-Identifier: EPL-2.0

package timeline

// NumChannels is the channel count of every timeline. Mono sources are
// duplicated to stereo on ingestion; anything wider is rejected by the
// format decoders.
const NumChannels = 2

// Timeline is a fully materialized 2-channel air pressure timeline together
// with the moment (in seconds) at which it starts within a mix.
//
// A Timeline is produced once, by a renderer or a format decoder, and
// consumed once, by Mix. It is never shared between mixing groups.
type Timeline struct {
	Samples [NumChannels][]float64
	Start   float64
}

// New returns a silent timeline of n samples per channel starting at 0.
func New(n int) Timeline {
	var t Timeline
	for ch := range t.Samples {
		t.Samples[ch] = make([]float64, n)
	}
	return t
}

// FromMono duplicates a single channel to both output channels.
func FromMono(samples []float64) Timeline {
	right := make([]float64, len(samples))
	copy(right, samples)

	var t Timeline
	t.Samples[0] = samples
	t.Samples[1] = right
	return t
}

// FromStereo wraps separate left and right channels. Both slices must have
// the same length.
func FromStereo(left, right []float64) Timeline {
	var t Timeline
	t.Samples[0] = left
	t.Samples[1] = right
	return t
}

// Len returns the number of samples per channel.
func (t Timeline) Len() int {
	return len(t.Samples[0])
}

// Duration returns the length of the timeline content in seconds at the
// given frame rate. The start offset is not included.
func (t Timeline) Duration(frameRate int) float64 {
	return float64(t.Len()) / float64(frameRate)
}
