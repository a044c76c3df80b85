// SPDX-License-Identifier: EPL-2.0

// Package timeline holds fully decoded 2-channel sample timelines and mixes
// them into output buses.
//
// # Timeline
//
// A Timeline pairs a 2×N sample matrix with a start offset in seconds:
//
//	t := timeline.FromMono(samples)
//	t.Start = 1.5 // begins 1.5s into the mix
//
// Timelines are produced by renderers and format decoders and consumed
// exactly once by Mix.
//
// # Mixing
//
// Mix sums timelines into one 2-channel bus per group and stacks the buses:
//
//	out, err := timeline.Mix(timeline.MixPlan{
//	    Tracks:    tracks,
//	    Groups:    [][]int{{0, 1}, {2}},
//	    FrameRate: 48000,
//	})
//	// out has 4 channels: bus 0 = tracks 0+1, bus 1 = track 2
//
// Each track is right-shifted by round(frameRate*Start) samples, scaled by
// its gain and folded in with SumTwo. All buses are zero-padded to the same
// length before stacking.
//
// # Sample Format
//
// Samples are float64 air pressure values, nominally in [-1, 1]. Summation
// happens without clipping; conversion to integer PCM is the concern of the
// WAV writer.
package timeline
