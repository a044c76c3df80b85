// SPDX-License-Identifier: EPL-2.0

package event

import "sort"

// Note is a timed note event. A Note with Velocity <= 0 is a silence marker:
// it takes part in duration bookkeeping but never sounds.
type Note struct {
	Start    float64 // seconds
	End      float64 // seconds, End >= Start
	Pitch    int
	Velocity int
}

// Sounding reports whether the note produces audible output.
func (n Note) Sounding() bool {
	return n.Velocity > 0
}

// ControlChange is a timed controller event. Besides its usual MIDI meaning
// it doubles as a duration-extension marker: a controller event placed after
// the last audible note forces an external renderer to keep producing output
// up to that time.
type ControlChange struct {
	Number int
	Value  int
	Time   float64 // seconds
}

// PitchBend is a timed pitch bend event.
type PitchBend struct {
	Pitch int
	Time  float64 // seconds
}

// Instrument is a named track of notes, controller events and pitch bends.
// The name is the identity key when documents are merged; it must not be
// empty.
type Instrument struct {
	Name           string
	Program        int
	IsDrum         bool
	Notes          []Note
	ControlChanges []ControlChange
	PitchBends     []PitchBend
}

// Document is an in-memory note-event document: a collection of instrument
// tracks. Documents are read-only inputs; every operation on them returns a
// new document.
type Document []Instrument

// SoundingSpan returns the start of the earliest and the end of the latest
// sounding note across all instruments, and whether any sounding note
// exists.
func (d Document) SoundingSpan() (start, end float64, ok bool) {
	for _, instrument := range d {
		for _, note := range instrument.Notes {
			if !note.Sounding() {
				continue
			}
			if !ok || note.Start < start {
				start = note.Start
			}
			if !ok || note.End > end {
				end = note.End
			}
			ok = true
		}
	}
	return start, end, ok
}

// Duration returns the end time of the latest note, sounding or not.
// Controller and pitch bend events do not contribute.
func (d Document) Duration() float64 {
	var end float64
	for _, instrument := range d {
		for _, note := range instrument.Notes {
			if note.End > end {
				end = note.End
			}
		}
	}
	return end
}

// sortNotes orders notes by start time, then pitch. Equal keys keep their
// insertion order.
func sortNotes(notes []Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].Start != notes[j].Start {
			return notes[i].Start < notes[j].Start
		}
		return notes[i].Pitch < notes[j].Pitch
	})
}
