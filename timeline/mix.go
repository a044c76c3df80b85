// SPDX-License-Identifier: EPL-2.0

package timeline

import (
	"fmt"
	"math"
)

// MixPlan describes how a set of timelines is combined into output buses.
//
// Gains holds one flat gain per track; nil means 1.0 everywhere. Groups
// partitions (or merely covers) track indices into independent buses; nil or
// empty means a single bus containing every track. Negative indices count
// from the end of Tracks. A track listed in no group is silently left out of
// the output.
type MixPlan struct {
	Tracks          []Timeline
	Gains           []float64
	Groups          [][]int
	OpeningSilence  float64
	TrailingSilence float64
	FrameRate       int
}

// Mix aligns, pads and sums the planned tracks into one 2-channel bus per
// group and stacks the buses along the channel axis. The result has exactly
// 2*len(groups) channels, every channel right-padded with zeros to the
// longest bus.
//
// Mix never returns a partial result: any contract violation fails before
// the first sample is touched.
func Mix(plan MixPlan) ([][]float64, error) {
	gains := plan.Gains
	if gains == nil {
		gains = make([]float64, len(plan.Tracks))
		for i := range gains {
			gains[i] = 1.0
		}
	}
	if len(gains) != len(plan.Tracks) {
		return nil, fmt.Errorf("%w: %d gains for %d tracks", ErrGainCount, len(gains), len(plan.Tracks))
	}

	groups := plan.Groups
	if len(groups) == 0 {
		all := make([]int, len(plan.Tracks))
		for i := range all {
			all[i] = i
		}
		groups = [][]int{all}
	}
	for _, group := range groups {
		for _, index := range group {
			if index < -len(plan.Tracks) || index >= len(plan.Tracks) {
				return nil, fmt.Errorf("%w: %d with %d tracks", ErrIndexOutOfRange, index, len(plan.Tracks))
			}
		}
	}

	opening := secondsToSamples(plan.OpeningSilence, plan.FrameRate)
	trailing := secondsToSamples(plan.TrailingSilence, plan.FrameRate)

	buses := make([][NumChannels][]float64, 0, len(groups))
	maxLength := 0
	for _, group := range groups {
		var bus [NumChannels][]float64
		for ch := range bus {
			bus[ch] = []float64{}
		}
		for _, index := range group {
			if index < 0 {
				index += len(plan.Tracks)
			}
			track := plan.Tracks[index]
			if track.Start < 0 {
				return nil, fmt.Errorf("%w: track %d starts at %g", ErrNegativeStart, index, track.Start)
			}
			offset := secondsToSamples(track.Start, plan.FrameRate)
			bus = SumTwo(bus, placed(track, offset, gains[index]))
		}
		for ch := range bus {
			padded := make([]float64, opening+len(bus[ch])+trailing)
			copy(padded[opening:], bus[ch])
			bus[ch] = padded
		}
		if len(bus[0]) > maxLength {
			maxLength = len(bus[0])
		}
		buses = append(buses, bus)
	}

	out := make([][]float64, 0, NumChannels*len(buses))
	for _, bus := range buses {
		for ch := range bus {
			aligned := make([]float64, maxLength)
			copy(aligned, bus[ch])
			out = append(out, aligned)
		}
	}
	return out, nil
}

// placed shifts a track right by offset samples and applies its gain.
func placed(track Timeline, offset int, gain float64) [NumChannels][]float64 {
	var out [NumChannels][]float64
	for ch := range out {
		shifted := make([]float64, offset+len(track.Samples[ch]))
		for i, v := range track.Samples[ch] {
			shifted[offset+i] = gain * v
		}
		out[ch] = shifted
	}
	return out
}

func secondsToSamples(seconds float64, frameRate int) int {
	return int(math.Round(float64(frameRate) * seconds))
}
