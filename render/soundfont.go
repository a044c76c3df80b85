// SPDX-License-Identifier: EPL-2.0

package render

import (
	"fmt"
	"math"
	"os"
	"sort"

	meltysynth "github.com/sinshu/go-meltysynth/meltysynth"

	"github.com/ik5/mixdown/event"
	"github.com/ik5/mixdown/timeline"
)

const (
	// renderBlock aligns the render loop with common synth effect
	// processing sizes to avoid internal ring-buffer edge cases.
	renderBlock = 1024

	drumChannel = 9
)

// MIDI channel voice commands fed to the synthesizer.
const (
	commandNoteOff       = 0x80
	commandNoteOn        = 0x90
	commandControlChange = 0xB0
	commandProgramChange = 0xC0
	commandPitchBend     = 0xE0
)

// SoundFont renders documents in-process with the go-meltysynth
// synthesizer, without spawning any external program.
type SoundFont struct {
	Font               *meltysynth.SoundFont
	InstrumentPrograms map[string]int
}

// LoadSoundFont reads an SF2 file for use with the SoundFont renderer.
func LoadSoundFont(path string) (*meltysynth.SoundFont, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	font, err := meltysynth.NewSoundFont(f)
	if err != nil {
		return nil, fmt.Errorf("parsing soundfont %s: %w", path, err)
	}
	return font, nil
}

func (s SoundFont) Programs() map[string]int {
	return s.InstrumentPrograms
}

// Render synthesizes the document block by block. The output covers every
// event in the document, including trailing duration-extension controller
// events, so merged documents keep their trailing silence.
func (s SoundFont) Render(document event.Document, frameRate int) (timeline.Timeline, error) {
	if s.Font == nil {
		return timeline.Timeline{}, ErrNilSoundFont
	}

	settings := meltysynth.NewSynthesizerSettings(int32(frameRate))
	settings.BlockSize = renderBlock
	synth, err := meltysynth.NewSynthesizer(s.Font, settings)
	if err != nil {
		return timeline.Timeline{}, fmt.Errorf("creating synthesizer: %w", err)
	}

	schedule, total := buildSchedule(document, frameRate)

	left := make([]float64, 0, total)
	right := make([]float64, 0, total)
	blockL := make([]float32, renderBlock)
	blockR := make([]float32, renderBlock)

	cursor := eventCursor{schedule: schedule}
	for pos := 0; pos < total; pos += renderBlock {
		n := renderBlock
		if pos+n > total {
			n = total - pos
		}
		for _, ev := range cursor.upTo(pos+n, pos+n == total) {
			synth.ProcessMidiMessage(ev.channel, ev.command, ev.data1, ev.data2)
		}
		// Always render a full block and keep only what is needed, so the
		// synth sees a constant block size.
		synth.Render(blockL, blockR)
		for i := 0; i < n; i++ {
			left = append(left, float64(blockL[i]))
			right = append(right, float64(blockR[i]))
		}
	}

	return timeline.FromStereo(left, right), nil
}

// eventCursor walks a sample-ordered schedule in block-sized windows.
type eventCursor struct {
	schedule []scheduledEvent
	next     int
}

// upTo returns the events due before the block ending at limit. The final
// block also flushes events landing exactly on the last sample: the closing
// note-offs whose end times define the total length land there and must
// reach the synthesizer.
func (c *eventCursor) upTo(limit int, final bool) []scheduledEvent {
	start := c.next
	for c.next < len(c.schedule) {
		if !final && c.schedule[c.next].sample >= limit {
			break
		}
		c.next++
	}
	return c.schedule[start:c.next]
}

type scheduledEvent struct {
	sample  int
	channel int32
	command int32
	data1   int32
	data2   int32
}

// firing order for events landing on the same sample: set the channel up
// first, release old notes before starting new ones.
func commandPriority(command int32) int {
	switch command {
	case commandProgramChange:
		return 0
	case commandControlChange, commandPitchBend:
		return 1
	case commandNoteOff:
		return 2
	default:
		return 3
	}
}

// buildSchedule flattens a document into channel voice messages ordered by
// sample index, and returns the total number of samples the render must
// cover. Silence marker notes are skipped; controller and pitch bend events
// still extend the covered duration.
func buildSchedule(document event.Document, frameRate int) ([]scheduledEvent, int) {
	var schedule []scheduledEvent
	total := 0
	at := func(seconds float64) int {
		sample := int(math.Round(float64(frameRate) * seconds))
		if sample < 0 {
			sample = 0
		}
		if sample > total {
			total = sample
		}
		return sample
	}

	nextChannel := int32(0)
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

		schedule = append(schedule, scheduledEvent{
			sample:  0,
			channel: channel,
			command: commandProgramChange,
			data1:   clampData(instrument.Program),
		})
		for _, note := range instrument.Notes {
			if !note.Sounding() {
				continue
			}
			key := clampData(note.Pitch)
			schedule = append(schedule,
				scheduledEvent{at(note.Start), channel, commandNoteOn, key, clampData(note.Velocity)},
				scheduledEvent{at(note.End), channel, commandNoteOff, key, 0},
			)
		}
		for _, control := range instrument.ControlChanges {
			schedule = append(schedule, scheduledEvent{
				at(control.Time), channel, commandControlChange,
				clampData(control.Number), clampData(control.Value),
			})
		}
		for _, bend := range instrument.PitchBends {
			value := bend.Pitch + 8192
			if value < 0 {
				value = 0
			}
			if value > 16383 {
				value = 16383
			}
			schedule = append(schedule, scheduledEvent{
				at(bend.Time), channel, commandPitchBend,
				int32(value & 0x7F), int32(value >> 7),
			})
		}
	}

	sort.SliceStable(schedule, func(i, j int) bool {
		if schedule[i].sample != schedule[j].sample {
			return schedule[i].sample < schedule[j].sample
		}
		return commandPriority(schedule[i].command) < commandPriority(schedule[j].command)
	})
	return schedule, total
}

func clampData(v int) int32 {
	if v < 0 {
		return 0
	}
	if v > 127 {
		return 127
	}
	return int32(v)
}
