// SPDX-License-Identifier: EPL-2.0

package render

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/ik5/mixdown/event"
	"github.com/ik5/mixdown/formats/wav"
	"github.com/ik5/mixdown/smf"
	"github.com/ik5/mixdown/timeline"
)

// DefaultTrailingSilence is the tail appended to documents before handing
// them to FluidSynth. Versions prior to 2.3.1 terminate output at the last
// note-on boundary, cutting releases short; a trailing controller event
// pushes the boundary out.
const DefaultTrailingSilence = 0.5

// FluidSynth renders documents by invoking the fluidsynth binary with a
// SoundFont and reading back the WAV it produces.
//
// The zero value of Gain means 1.0 and the zero value of TrailingSilence
// means DefaultTrailingSilence; a negative TrailingSilence disables the tail
// extension entirely. Chorus and reverb are off unless enabled.
type FluidSynth struct {
	SoundFontPath      string
	InstrumentPrograms map[string]int
	Gain               float64
	Chorus             bool
	Reverb             bool
	TrailingSilence    float64
	Command            string // fluidsynth binary; empty means "fluidsynth"
}

func (f FluidSynth) Programs() map[string]int {
	return f.InstrumentPrograms
}

// Render writes the document to a temporary MIDI file, synthesizes it with
// fluidsynth and decodes the resulting WAV into a timeline.
func (f FluidSynth) Render(document event.Document, frameRate int) (timeline.Timeline, error) {
	document = f.extended(document)

	dir, err := os.MkdirTemp("", "mixdown-fluidsynth-")
	if err != nil {
		return timeline.Timeline{}, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	midiPath := filepath.Join(dir, "in.mid")
	wavPath := filepath.Join(dir, "out.wav")
	if err := smf.WriteFile(midiPath, document); err != nil {
		return timeline.Timeline{}, err
	}

	command := f.Command
	if command == "" {
		command = "fluidsynth"
	}
	cmd := exec.Command(command, f.args(frameRate, wavPath, midiPath)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return timeline.Timeline{}, fmt.Errorf("running %s: %w: %s", command, err, stderr.String())
	}

	return wav.ReadFile(wavPath, frameRate)
}

// extended applies the configured trailing silence to the document before it
// is handed to the synthesizer. A negative TrailingSilence passes the
// document through untouched.
func (f FluidSynth) extended(document event.Document) event.Document {
	trailing := f.TrailingSilence
	if trailing < 0 {
		return document
	}
	if trailing == 0 {
		trailing = DefaultTrailingSilence
	}
	return event.ExtendTail(document, trailing)
}

func (f FluidSynth) args(frameRate int, wavPath, midiPath string) []string {
	gain := f.Gain
	if gain == 0 {
		gain = 1.0
	}
	args := []string{
		"-r", strconv.Itoa(frameRate),
		"-g", strconv.FormatFloat(gain, 'f', -1, 64),
	}
	if !f.Chorus {
		args = append(args, "-C0")
	}
	if !f.Reverb {
		args = append(args, "-R0")
	}
	return append(args, "-F", wavPath, f.SoundFontPath, midiPath)
}
