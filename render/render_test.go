// SPDX-License-Identifier: EPL-2.0

package render

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/ik5/mixdown/event"
)

func TestBuildSchedule_ChannelAssignment(t *testing.T) {
	t.Parallel()

	doc := event.Document{
		{Name: "bass", Notes: []event.Note{{Start: 0, End: 1, Pitch: 40, Velocity: 90}}},
		{Name: "drums", IsDrum: true, Notes: []event.Note{{Start: 0, End: 1, Pitch: 36, Velocity: 100}}},
		{Name: "lead", Notes: []event.Note{{Start: 0, End: 1, Pitch: 60, Velocity: 80}}},
	}

	schedule, _ := buildSchedule(doc, 44100)

	channels := make(map[int32]bool)
	for _, ev := range schedule {
		if ev.command == commandNoteOn {
			channels[ev.channel] = true
		}
	}
	for _, want := range []int32{0, 1, drumChannel} {
		if !channels[want] {
			t.Errorf("no note on channel %d, channels used: %v", want, channels)
		}
	}
}

func TestBuildSchedule_SkipsDrumChannelForMelodic(t *testing.T) {
	t.Parallel()

	// Ten melodic instruments: the tenth must land on channel 10, not on
	// the percussion channel 9.
	var doc event.Document
	for i := 0; i < 10; i++ {
		doc = append(doc, event.Instrument{
			Name:  "inst",
			Notes: []event.Note{{Start: 0, End: 1, Pitch: 60, Velocity: 80}},
		})
	}

	schedule, _ := buildSchedule(doc, 44100)

	var channels []int32
	for _, ev := range schedule {
		if ev.command == commandNoteOn {
			channels = append(channels, ev.channel)
		}
	}
	want := []int32{0, 1, 2, 3, 4, 5, 6, 7, 8, 10}
	if !reflect.DeepEqual(channels, want) {
		t.Errorf("note-on channels = %v, want %v", channels, want)
	}
}

func TestBuildSchedule_SkipsMarkerNotes(t *testing.T) {
	t.Parallel()

	doc := event.Document{
		{
			Name: "lead",
			Notes: []event.Note{
				{Start: 0, End: 1, Pitch: 60, Velocity: 80},
				{Start: 1, End: 3, Pitch: 1, Velocity: 0}, // trailing marker
			},
			ControlChanges: []event.ControlChange{{Number: 7, Value: 0, Time: 3}},
		},
	}

	schedule, total := buildSchedule(doc, 1000)

	noteOns := 0
	for _, ev := range schedule {
		if ev.command == commandNoteOn {
			noteOns++
		}
	}
	if noteOns != 1 {
		t.Errorf("schedule has %d note-ons, want 1", noteOns)
	}
	// The marker note is not played, but its companion controller still
	// stretches the rendered duration.
	if total != 3000 {
		t.Errorf("total = %d samples, want 3000", total)
	}
}

func TestBuildSchedule_Ordering(t *testing.T) {
	t.Parallel()

	doc := event.Document{
		{
			Name:           "lead",
			Program:        12,
			Notes:          []event.Note{{Start: 0, End: 1, Pitch: 60, Velocity: 80}},
			ControlChanges: []event.ControlChange{{Number: 64, Value: 127, Time: 0}},
		},
	}

	schedule, _ := buildSchedule(doc, 44100)

	var commands []int32
	for _, ev := range schedule {
		if ev.sample == 0 {
			commands = append(commands, ev.command)
		}
	}
	want := []int32{commandProgramChange, commandControlChange, commandNoteOn}
	if !reflect.DeepEqual(commands, want) {
		t.Errorf("sample-zero command order = %#x, want %#x", commands, want)
	}
}

func TestBuildSchedule_NoteOffBeforeNoteOn(t *testing.T) {
	t.Parallel()

	doc := event.Document{
		{
			Name: "lead",
			Notes: []event.Note{
				{Start: 0, End: 1, Pitch: 60, Velocity: 80},
				{Start: 1, End: 2, Pitch: 62, Velocity: 80},
			},
		},
	}

	schedule, _ := buildSchedule(doc, 1000)

	var commands []int32
	for _, ev := range schedule {
		if ev.sample == 1000 {
			commands = append(commands, ev.command)
		}
	}
	want := []int32{commandNoteOff, commandNoteOn}
	if !reflect.DeepEqual(commands, want) {
		t.Errorf("commands at note boundary = %#x, want %#x", commands, want)
	}
}

func TestBuildSchedule_PitchBendSplit(t *testing.T) {
	t.Parallel()

	doc := event.Document{
		{
			Name:       "lead",
			PitchBends: []event.PitchBend{{Pitch: 2000, Time: 0}},
		},
	}

	schedule, _ := buildSchedule(doc, 44100)

	var bend *scheduledEvent
	for i := range schedule {
		if schedule[i].command == commandPitchBend {
			bend = &schedule[i]
		}
	}
	if bend == nil {
		t.Fatal("no pitch bend in schedule")
	}
	value := int(bend.data2)<<7 | int(bend.data1)
	if value != 2000+8192 {
		t.Errorf("14-bit bend value = %d, want %d", value, 2000+8192)
	}
}

func TestEventCursor_FinalBlockFlushesLastSample(t *testing.T) {
	t.Parallel()

	schedule := []scheduledEvent{
		{sample: 0, command: commandNoteOn},
		{sample: 500, command: commandControlChange},
		{sample: 1000, command: commandNoteOff},
	}
	cursor := eventCursor{schedule: schedule}

	got := cursor.upTo(512, false)
	if len(got) != 2 {
		t.Fatalf("first window delivered %d events, want 2", len(got))
	}

	// The note-off at sample 1000 defines the total length; the final
	// window must deliver it even though it sits on the window boundary.
	got = cursor.upTo(1000, true)
	if len(got) != 1 || got[0].command != commandNoteOff {
		t.Fatalf("final window delivered %+v, want the closing note-off", got)
	}

	if remaining := cursor.upTo(2000, true); len(remaining) != 0 {
		t.Errorf("exhausted cursor delivered %d events, want 0", len(remaining))
	}
}

func TestSoundFont_NilFont(t *testing.T) {
	t.Parallel()

	_, err := SoundFont{}.Render(event.Document{}, 44100)
	if !errors.Is(err, ErrNilSoundFont) {
		t.Errorf("Render() error = %v, want %v", err, ErrNilSoundFont)
	}
}

func TestFluidSynth_Args(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		synth FluidSynth
		want  []string
	}{
		{
			name:  "defaults",
			synth: FluidSynth{SoundFontPath: "font.sf2"},
			want:  []string{"-r", "44100", "-g", "1", "-C0", "-R0", "-F", "out.wav", "font.sf2", "in.mid"},
		},
		{
			name:  "gain and effects",
			synth: FluidSynth{SoundFontPath: "font.sf2", Gain: 0.5, Chorus: true, Reverb: true},
			want:  []string{"-r", "44100", "-g", "0.5", "-F", "out.wav", "font.sf2", "in.mid"},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := test.synth.args(44100, "out.wav", "in.mid")
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("args() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestFluidSynth_Extended(t *testing.T) {
	t.Parallel()

	doc := event.Document{
		{Name: "lead", Notes: []event.Note{{Start: 0, End: 2, Pitch: 60, Velocity: 80}}},
	}

	tests := []struct {
		name     string
		trailing float64
		wantTime float64
		disabled bool
	}{
		{name: "zero means default", trailing: 0, wantTime: 2 + DefaultTrailingSilence},
		{name: "explicit tail", trailing: 1.5, wantTime: 3.5},
		{name: "negative disables", trailing: -1, disabled: true},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := FluidSynth{TrailingSilence: test.trailing}.extended(doc)
			controls := got[0].ControlChanges
			if test.disabled {
				if len(controls) != 0 {
					t.Fatalf("document gained %d control changes, want 0", len(controls))
				}
				return
			}
			if len(controls) != 1 {
				t.Fatalf("document has %d control changes, want 1", len(controls))
			}
			if math.Abs(controls[0].Time-test.wantTime) > 1e-9 {
				t.Errorf("tail control time = %v, want %v", controls[0].Time, test.wantTime)
			}
		})
	}
}

func TestProgramsNil(t *testing.T) {
	t.Parallel()

	var r Renderer = FluidSynth{}
	if r.Programs() != nil {
		t.Error("FluidSynth zero value Programs() != nil")
	}
	r = SoundFont{}
	if r.Programs() != nil {
		t.Error("SoundFont zero value Programs() != nil")
	}
}
