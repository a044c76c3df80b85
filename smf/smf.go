// SPDX-License-Identifier: EPL-2.0

package smf

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"gitlab.com/gomidi/midi/v2"
	gosmf "gitlab.com/gomidi/midi/v2/smf"

	"github.com/ik5/mixdown/event"
)

const (
	defaultTempo = 120.0 // BPM assumed when a file carries no tempo event
	resolution   = 960   // ticks per quarter note
	drumChannel  = 9
)

// Write serializes a document as a format 1 Standard MIDI File: a tempo
// track followed by one track per instrument. Times are quantized to the
// tick resolution at a fixed tempo of 120 BPM.
//
// Zero-velocity marker notes are written as velocity-0 note-ons; standard
// MIDI semantics turn those into note terminations, so markers do not
// survive a round trip, while their companion controller events do.
func Write(w io.Writer, document event.Document) error {
	s := gosmf.New()
	ticks := gosmf.MetricTicks(resolution)
	s.TimeFormat = ticks

	var tempoTrack gosmf.Track
	tempoTrack.Add(0, gosmf.MetaTempo(defaultTempo))
	tempoTrack.Close(0)
	if err := s.Add(tempoTrack); err != nil {
		return fmt.Errorf("adding tempo track: %w", err)
	}

	nextChannel := uint8(0)
	for _, instrument := range document {
		channel := nextChannel
		if instrument.IsDrum {
			channel = drumChannel
		} else {
			nextChannel++
			if nextChannel == drumChannel {
				nextChannel++
			}
			if nextChannel > 15 {
				nextChannel = 0
			}
		}

		type timed struct {
			tick uint32
			msg  midi.Message
		}
		events := make([]timed, 0, 2*len(instrument.Notes)+len(instrument.ControlChanges)+len(instrument.PitchBends)+1)
		events = append(events, timed{0, midi.ProgramChange(channel, clamp7(instrument.Program))})
		for _, note := range instrument.Notes {
			key := clamp7(note.Pitch)
			events = append(events,
				timed{tickAt(ticks, note.Start), midi.NoteOn(channel, key, clamp7(note.Velocity))},
				timed{tickAt(ticks, note.End), midi.NoteOff(channel, key)},
			)
		}
		for _, control := range instrument.ControlChanges {
			events = append(events, timed{
				tickAt(ticks, control.Time),
				midi.ControlChange(channel, clamp7(control.Number), clamp7(control.Value)),
			})
		}
		for _, bend := range instrument.PitchBends {
			events = append(events, timed{tickAt(ticks, bend.Time), midi.Pitchbend(channel, int16(bend.Pitch))})
		}
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].tick < events[j].tick
		})

		var track gosmf.Track
		track.Add(0, gosmf.MetaTrackSequenceName(instrument.Name))
		cursor := uint32(0)
		for _, ev := range events {
			track.Add(ev.tick-cursor, ev.msg)
			cursor = ev.tick
		}
		track.Close(0)
		if err := s.Add(track); err != nil {
			return fmt.Errorf("adding track %q: %w", instrument.Name, err)
		}
	}

	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("writing midi file: %w", err)
	}
	return nil
}

// WriteFile writes a document to a Standard MIDI File at path.
func WriteFile(path string, document event.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	return Write(f, document)
}

// Read parses a Standard MIDI File into a document. Each track with note or
// controller content becomes one instrument named by its track name meta
// event. The first tempo event applies to the whole file; tempo changes are
// not supported, later ones are ignored.
func Read(r io.Reader) (event.Document, error) {
	s, err := gosmf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("reading midi file: %w", err)
	}

	ticks, ok := s.TimeFormat.(gosmf.MetricTicks)
	if !ok {
		return nil, ErrTimeFormat
	}

	tempo := defaultTempo
	tempoFound := false
	for _, track := range s.Tracks {
		for _, ev := range track {
			var bpm float64
			if ev.Message.GetMetaTempo(&bpm) && !tempoFound {
				tempo = bpm
				tempoFound = true
			}
		}
	}

	var document event.Document
	for _, track := range s.Tracks {
		instrument, ok := readTrack(track, ticks, tempo)
		if ok {
			document = append(document, instrument)
		}
	}
	return document, nil
}

// ReadFile parses the Standard MIDI File at path into a document.
func ReadFile(path string) (event.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return Read(f)
}

type openNote struct {
	start    float64
	velocity int
}

func readTrack(track gosmf.Track, ticks gosmf.MetricTicks, tempo float64) (event.Instrument, bool) {
	var instrument event.Instrument
	open := make(map[uint8][]openNote)
	hasContent := false
	programSet := false

	absTicks := uint32(0)
	for _, ev := range track {
		absTicks += ev.Delta
		now := ticks.Duration(tempo, absTicks).Seconds()

		var (
			channel, key, velocity uint8
			number, value          uint8
			program                uint8
			relative               int16
			absolute               uint16
			name                   string
		)
		switch {
		case ev.Message.GetNoteStart(&channel, &key, &velocity):
			open[key] = append(open[key], openNote{start: now, velocity: int(velocity)})
			markDrum(&instrument, channel)
		case ev.Message.GetNoteEnd(&channel, &key):
			pending := open[key]
			if len(pending) == 0 {
				break
			}
			note := pending[0]
			open[key] = pending[1:]
			instrument.Notes = append(instrument.Notes, event.Note{
				Start:    note.start,
				End:      now,
				Pitch:    int(key),
				Velocity: note.velocity,
			})
			hasContent = true
		case ev.Message.GetControlChange(&channel, &number, &value):
			instrument.ControlChanges = append(instrument.ControlChanges, event.ControlChange{
				Number: int(number),
				Value:  int(value),
				Time:   now,
			})
			markDrum(&instrument, channel)
			hasContent = true
		case ev.Message.GetPitchBend(&channel, &relative, &absolute):
			instrument.PitchBends = append(instrument.PitchBends, event.PitchBend{
				Pitch: int(relative),
				Time:  now,
			})
			markDrum(&instrument, channel)
			hasContent = true
		case ev.Message.GetProgramChange(&channel, &program):
			if !programSet {
				instrument.Program = int(program)
				programSet = true
			}
			markDrum(&instrument, channel)
		case ev.Message.GetMetaTrackName(&name):
			if instrument.Name == "" {
				instrument.Name = name
			}
		}
	}

	// Notes still open at end of track are dropped.
	return instrument, hasContent
}

func markDrum(instrument *event.Instrument, channel uint8) {
	if channel == drumChannel {
		instrument.IsDrum = true
	}
}

func tickAt(ticks gosmf.MetricTicks, seconds float64) uint32 {
	if seconds < 0 {
		return 0
	}
	return ticks.Ticks(defaultTempo, time.Duration(seconds*float64(time.Second)))
}

func clamp7(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 127 {
		return 127
	}
	return uint8(v)
}
