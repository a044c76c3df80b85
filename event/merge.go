// SPDX-License-Identifier: EPL-2.0

package event

import (
	"fmt"
	"sort"
)

const (
	// markerPitch is the pitch of the synthetic zero-velocity note appended
	// after the last real event.
	markerPitch = 1
	// markerController is the controller number of the duration-extension
	// event appended alongside the marker note (channel volume, value 0).
	markerController = 7
)

// Merge concatenates documents into a single timeline. gaps holds the signed
// caesura (in seconds) between each pair of successive documents, so it must
// be one element shorter than documents; negative gaps make documents
// overlap. openingSilence shifts the first document right, and
// trailingSilence is appended after the last event.
//
// Same-named instruments from different documents end up in one output
// track; the first occurrence decides program and drum flag. Only sounding
// notes are carried over, while controller and pitch bend events are carried
// regardless. Every output track gets a trailing silence marker pair (a
// zero-velocity note and a channel volume controller set to zero) so that
// external renderers cover the full intended duration.
//
// Output instruments are sorted by name, notes within each instrument by
// (start, pitch).
func Merge(documents []Document, gaps []float64, openingSilence, trailingSilence float64) (Document, error) {
	if len(gaps) != len(documents)-1 {
		return nil, fmt.Errorf("%w: %d gaps for %d documents", ErrGapCount, len(gaps), len(documents))
	}
	shifts := make([]float64, 0, len(documents))
	shifts = append(shifts, openingSilence)
	shifts = append(shifts, gaps...)

	accumulators := make(map[string]*Instrument)
	currentTime := 0.0
	for i, document := range documents {
		gap := shifts[i]
		docStart, docEnd, ok := document.SoundingSpan()
		if !ok {
			return nil, fmt.Errorf("%w: document %d", ErrEmptyDocument, i)
		}
		shift := currentTime + gap - docStart

		for _, instrument := range document {
			if instrument.Name == "" {
				return nil, fmt.Errorf("%w: document %d", ErrUnnamedInstrument, i)
			}
			accumulator, ok := accumulators[instrument.Name]
			if !ok {
				accumulator = &Instrument{
					Name:    instrument.Name,
					Program: instrument.Program,
					IsDrum:  instrument.IsDrum,
				}
				accumulators[instrument.Name] = accumulator
			}

			for _, note := range instrument.Notes {
				if !note.Sounding() {
					continue
				}
				note.Start += shift
				note.End += shift
				accumulator.Notes = append(accumulator.Notes, note)
			}
			for _, control := range instrument.ControlChanges {
				control.Time += shift
				accumulator.ControlChanges = append(accumulator.ControlChanges, control)
			}
			for _, bend := range instrument.PitchBends {
				bend.Time += shift
				accumulator.PitchBends = append(accumulator.PitchBends, bend)
			}
		}

		currentTime += docEnd - docStart + gap
	}

	markerTime := currentTime + trailingSilence
	for _, accumulator := range accumulators {
		accumulator.Notes = append(accumulator.Notes, Note{
			Start:    currentTime,
			End:      markerTime,
			Pitch:    markerPitch,
			Velocity: 0,
		})
		accumulator.ControlChanges = append(accumulator.ControlChanges, ControlChange{
			Number: markerController,
			Value:  0,
			Time:   markerTime,
		})
	}

	names := make([]string, 0, len(accumulators))
	for name := range accumulators {
		names = append(names, name)
	}
	sort.Strings(names)

	merged := make(Document, 0, len(names))
	for _, name := range names {
		accumulator := accumulators[name]
		sortNotes(accumulator.Notes)
		merged = append(merged, *accumulator)
	}
	return merged, nil
}

// ExtendTail appends a duration-extension controller event trailingSilence
// seconds after the last note end of every instrument. Unlike zero-velocity
// notes, this event prolongs the output of renderers such as FluidSynth,
// which in versions prior to 2.3.1 cut the last note short.
func ExtendTail(document Document, trailingSilence float64) Document {
	markerTime := document.Duration() + trailingSilence
	extended := make(Document, 0, len(document))
	for _, instrument := range document {
		controls := make([]ControlChange, 0, len(instrument.ControlChanges)+1)
		controls = append(controls, instrument.ControlChanges...)
		controls = append(controls, ControlChange{
			Number: markerController,
			Value:  0,
			Time:   markerTime,
		})
		instrument.ControlChanges = controls
		extended = append(extended, instrument)
	}
	return extended
}
