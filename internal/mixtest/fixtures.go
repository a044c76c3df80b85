// SPDX-License-Identifier: EPL-2.0

// Package mixtest provides fixtures shared by tests across the module.
package mixtest

import (
	"github.com/ik5/mixdown/event"
	"github.com/ik5/mixdown/timeline"
)

// Note builds a note event.
func Note(start, end float64, pitch, velocity int) event.Note {
	return event.Note{Start: start, End: end, Pitch: pitch, Velocity: velocity}
}

// Instrument builds a named instrument track holding the given notes.
func Instrument(name string, notes ...event.Note) event.Instrument {
	return event.Instrument{Name: name, Notes: notes}
}

// Document builds a single-instrument document.
func Document(name string, notes ...event.Note) event.Document {
	return event.Document{Instrument(name, notes...)}
}

// ConstantTimeline builds a timeline of n samples per channel, all set to
// value, starting at start seconds.
func ConstantTimeline(n int, value, start float64) timeline.Timeline {
	left := make([]float64, n)
	right := make([]float64, n)
	for i := 0; i < n; i++ {
		left[i] = value
		right[i] = value
	}
	t := timeline.FromStereo(left, right)
	t.Start = start
	return t
}

// RampTimeline builds a timeline of n samples per channel where sample i
// holds float64(i+1), starting at start seconds. Distinct values make
// alignment errors visible in tests.
func RampTimeline(n int, start float64) timeline.Timeline {
	left := make([]float64, n)
	right := make([]float64, n)
	for i := 0; i < n; i++ {
		left[i] = float64(i + 1)
		right[i] = float64(i + 1)
	}
	t := timeline.FromStereo(left, right)
	t.Start = start
	return t
}
